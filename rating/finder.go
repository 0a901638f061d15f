package rating

import (
	"math/rand"

	"github.com/wusunjie/kahypar/hgraph"
)

// BestNeighbor scans every vertex reachable from u through an incident
// hyperedge (excluding u itself and inactive/matched candidates, as
// reported by matched), rates each with fn, and returns the
// highest-rated one. Ties are resolved by tb. Returns ok=false if u has
// no eligible neighbor.
func BestNeighbor(h *hgraph.Hypergraph, u hgraph.VertexId, fn Func, tb TieBreak, r *rand.Rand, matched []bool) (best hgraph.VertexId, bestScore float64, ok bool) {
	seen := make(map[hgraph.VertexId]bool)
	for _, e := range h.IncidentEdges(u) {
		if !h.EdgeActive(e) {
			continue
		}
		for _, v := range h.Pins(e) {
			if v == u || seen[v] || matched[v] || !h.IsActive(v) {
				continue
			}
			seen[v] = true
			score := fn.Rate(h, u, v)
			if !ok || score > bestScore || (score == bestScore && tb.AcceptEqual(r)) {
				best, bestScore, ok = v, score, true
			}
		}
	}
	return
}
