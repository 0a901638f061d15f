package recursivebisection_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wusunjie/kahypar/coarsening"
	"github.com/wusunjie/kahypar/hgraph"
	"github.com/wusunjie/kahypar/initpart"
	"github.com/wusunjie/kahypar/objective"
	"github.com/wusunjie/kahypar/prng"
	"github.com/wusunjie/kahypar/recursivebisection"
	"github.com/wusunjie/kahypar/refinement"
)

func buildRing(nv int) (*hgraph.Hypergraph, []hgraph.VertexId) {
	h := hgraph.New()
	vs := make([]hgraph.VertexId, nv)
	for i := range vs {
		vs[i] = h.AddVertex(1)
	}
	for i := 0; i < nv; i++ {
		h.AddHyperedge(1, []hgraph.VertexId{vs[i], vs[(i+1)%nv]})
	}
	return h, vs
}

func buildPath(nv int) (*hgraph.Hypergraph, []hgraph.VertexId) {
	h := hgraph.New()
	vs := make([]hgraph.VertexId, nv)
	for i := range vs {
		vs[i] = h.AddVertex(1)
	}
	for i := 0; i < nv-1; i++ {
		h.AddHyperedge(1, []hgraph.VertexId{vs[i], vs[i+1]})
	}
	return h, vs
}

func baseConfig(k int, seed int64) recursivebisection.Config {
	return recursivebisection.Config{
		K:         k,
		Epsilon:   0.1,
		Objective: objective.Cut,
		CoarseningConfig: coarsening.Config{
			ContractionLimitMultiplier: 2,
			MaxAllowedWeightMultiplier: 1.5,
		},
		InitialRuns:        3,
		InitialPartitioner: initpart.GreedyRegionGrowing{},
		Refiner:            refinement.TwoWayFM{},
		RNG:                prng.FromSeed(seed),
	}
}

func TestPartitionAssignsEveryVertexToExactlyOneBlockInRange(t *testing.T) {
	h, vs := buildRing(40)
	cfg := baseConfig(4, 11)

	require.NoError(t, recursivebisection.Partition(context.Background(), h, cfg))

	seen := make(map[hgraph.VertexId]bool)
	for _, v := range vs {
		b := h.Block(v)
		require.GreaterOrEqual(t, int(b), 0)
		require.Less(t, int(b), cfg.K)
		require.False(t, seen[v])
		seen[v] = true
	}
	require.Len(t, seen, len(vs))
}

func TestPartitionWithNonPowerOfTwoKStillCoversAllBlocksRoughlyEvenly(t *testing.T) {
	h, vs := buildRing(33)
	cfg := baseConfig(3, 5)

	require.NoError(t, recursivebisection.Partition(context.Background(), h, cfg))

	counts := make([]int, cfg.K)
	for _, v := range vs {
		b := h.Block(v)
		require.GreaterOrEqual(t, int(b), 0)
		require.Less(t, int(b), cfg.K)
		counts[b]++
	}
	for _, c := range counts {
		require.Greater(t, c, 0)
	}
}

// A 16-vertex path split into 4 contiguous quarters has exactly 3 cut
// edges (one between each pair of adjacent quarters); recursive
// bisection with a tight epsilon of 0.03 should find an assignment at least
// that good.
func TestPartitionOnSixteenVertexPathWithFourBlocksKeepsCutLow(t *testing.T) {
	h, vs := buildPath(16)
	cfg := baseConfig(4, 7)
	cfg.Epsilon = 0.03

	require.NoError(t, recursivebisection.Partition(context.Background(), h, cfg))

	for _, v := range vs {
		b := h.Block(v)
		require.GreaterOrEqual(t, int(b), 0)
		require.Less(t, int(b), cfg.K)
	}
	require.LessOrEqual(t, objective.Evaluate(h, objective.Cut), int64(3))
}

func TestPartitionIsDeterministicGivenSeed(t *testing.T) {
	h1, vs1 := buildRing(24)
	h2, vs2 := buildRing(24)

	require.NoError(t, recursivebisection.Partition(context.Background(), h1, baseConfig(4, 99)))
	require.NoError(t, recursivebisection.Partition(context.Background(), h2, baseConfig(4, 99)))

	for i := range vs1 {
		require.Equal(t, h1.Block(vs1[i]), h2.Block(vs2[i]))
	}
}
