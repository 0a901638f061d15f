// Package community detects densely-connected vertex clusters via
// asynchronous label propagation over the hypergraph's clique expansion
// (each hyperedge contributes a weighted clique among its pins). The
// resulting labeling feeds rating.CommunityAware to bias coarsening
// toward contractions that stay within a community.
package community

import (
	"math/rand"
	"sort"

	"github.com/wusunjie/kahypar/hgraph"
	"github.com/wusunjie/kahypar/prng"
)

// Labeling maps every vertex id to a community id.
type Labeling []int32

// Of returns the community of v, or -1 if v is out of range.
func (l Labeling) Of(v hgraph.VertexId) int32 {
	if int(v) < 0 || int(v) >= len(l) {
		return -1
	}
	return l[v]
}

// Detect runs asynchronous label propagation for up to maxIterations
// rounds (or until no vertex changes its label in a full round) and
// returns the resulting community labeling. Each vertex initially forms
// its own singleton community; every round, every active vertex in a
// freshly shuffled order (seeing labels already updated this round) adopts
// the label with the highest total incident clique-edge weight among
// its neighbors, ties broken uniformly at random.
func Detect(h *hgraph.Hypergraph, maxIterations int, rng *rand.Rand) Labeling {
	n := h.MaxVertexID()
	labels := make(Labeling, n)
	for v := range labels {
		labels[v] = int32(v)
	}
	if rng == nil {
		rng = prng.FromSeed(0)
	}

	active := h.ActiveVertexIDs()
	order := make([]int, len(active))
	for i, v := range active {
		order[i] = int(v)
	}

	for iter := 0; iter < maxIterations; iter++ {
		prng.ShuffleInts(order, rng)
		changed := false
		for _, raw := range order {
			v := hgraph.VertexId(raw)
			weight := cliqueNeighborWeights(h, v, labels)
			if len(weight) == 0 {
				continue
			}
			best, bestW := labels[v], int64(-1)
			var ties []int32
			for lbl, w := range weight {
				if w > bestW {
					best, bestW = lbl, w
					ties = ties[:0]
					ties = append(ties, lbl)
				} else if w == bestW {
					ties = append(ties, lbl)
				}
			}
			if len(ties) > 1 {
				// Map iteration order is random; sort so the draw depends only on rng.
				sort.Slice(ties, func(i, j int) bool { return ties[i] < ties[j] })
				best = ties[rng.Intn(len(ties))]
			}
			if best != labels[v] {
				labels[v] = best
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return labels
}

// cliqueNeighborWeights sums, per neighboring community, the weight
// contributed by every hyperedge incident to v: each hyperedge e
// distributes w(e)/(|pins(e)|-1) to every other pin's community, the
// same per-pair normalization the heavy-edge rating function uses.
func cliqueNeighborWeights(h *hgraph.Hypergraph, v hgraph.VertexId, labels Labeling) map[int32]int64 {
	totals := make(map[int32]int64)
	for _, e := range h.IncidentEdges(v) {
		if !h.EdgeActive(e) {
			continue
		}
		pins := h.Pins(e)
		if len(pins) < 2 {
			continue
		}
		share := h.EdgeWeight(e) / int64(len(pins)-1)
		if share == 0 {
			share = 1
		}
		for _, p := range pins {
			if p == v || !h.IsActive(p) {
				continue
			}
			totals[labels[p]] += share
		}
	}
	return totals
}
