package coarsening_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wusunjie/kahypar/coarsening"
	"github.com/wusunjie/kahypar/hgraph"
	"github.com/wusunjie/kahypar/prng"
)

func buildUniformPath(n int) *hgraph.Hypergraph {
	h := hgraph.New()
	h.SetK(1)
	vs := make([]hgraph.VertexId, n)
	for i := range vs {
		vs[i] = h.AddVertex(1)
	}
	for i := 0; i < n-1; i++ {
		h.AddHyperedge(1, []hgraph.VertexId{vs[i], vs[i+1]})
	}
	return h
}

func TestCoarsenReachesContractionLimit(t *testing.T) {
	h := buildUniformPath(64)
	cfg := coarsening.Config{
		K:                          2,
		ContractionLimitMultiplier: 10,
		MaxAllowedWeightMultiplier: 3.25,
		RNG:                        prng.FromSeed(1),
	}
	history, err := coarsening.Coarsen(context.Background(), h, cfg)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	require.LessOrEqual(t, h.NumVertices(), 20)
}

func TestCoarsenRespectsMaxAllowedNodeWeight(t *testing.T) {
	h := buildUniformPath(1024)
	cfg := coarsening.Config{
		K:                          2,
		ContractionLimitMultiplier: 80,
		MaxAllowedWeightMultiplier: 3.25,
		RNG:                        prng.FromSeed(42),
	}
	_, err := coarsening.Coarsen(context.Background(), h, cfg)
	require.NoError(t, err)
	require.LessOrEqual(t, h.NumVertices(), 160)

	maxW := int64(0)
	for v := 0; v < h.MaxVertexID(); v++ {
		vid := hgraph.VertexId(v)
		if h.IsActive(vid) && h.VertexWeight(vid) > maxW {
			maxW = h.VertexWeight(vid)
		}
	}
	denom := 80.0 * 2
	weightCap := int64(3.25 / denom * 1024)
	require.LessOrEqual(t, maxW, weightCap+1)
}

func TestCoarsenIsDeterministicGivenSeed(t *testing.T) {
	cfg := coarsening.Config{K: 2, ContractionLimitMultiplier: 10, MaxAllowedWeightMultiplier: 3.25}

	h1 := buildUniformPath(64)
	cfg1 := cfg
	cfg1.RNG = prng.FromSeed(7)
	_, err := coarsening.Coarsen(context.Background(), h1, cfg1)
	require.NoError(t, err)

	h2 := buildUniformPath(64)
	cfg2 := cfg
	cfg2.RNG = prng.FromSeed(7)
	_, err = coarsening.Coarsen(context.Background(), h2, cfg2)
	require.NoError(t, err)

	require.Equal(t, h1.NumVertices(), h2.NumVertices())
}

func TestCoarsenReturnsPartialHistoryWhenContextAlreadyCanceled(t *testing.T) {
	h := buildUniformPath(64)
	cfg := coarsening.Config{
		K:                          2,
		ContractionLimitMultiplier: 10,
		MaxAllowedWeightMultiplier: 3.25,
		RNG:                        prng.FromSeed(1),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	history, err := coarsening.Coarsen(ctx, h, cfg)
	require.Error(t, err)
	require.Empty(t, history)
}
