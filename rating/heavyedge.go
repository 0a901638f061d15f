package rating

import "github.com/wusunjie/kahypar/hgraph"

// Func scores how attractive contracting u into v would be; higher is
// better. Implementations must be symmetric in practice (callers only
// ever call Rate(u,v) for the fixed u being matched), but need not be
// symmetric in signature.
type Func interface {
	Rate(h *hgraph.Hypergraph, u, v hgraph.VertexId) float64
}

// HeavyEdge is the default rating function:
//
//	r(u,v) = Σ_{e: u,v∈pins(e)} w(e)/(|pins(e)|-1) · 1/(w(u)·w(v))
//
// It favors contracting vertex pairs joined by heavy, small hyperedges,
// normalized by the weight the contraction would accumulate.
type HeavyEdge struct{}

func (HeavyEdge) Rate(h *hgraph.Hypergraph, u, v hgraph.VertexId) float64 {
	var sum float64
	for _, e := range h.IncidentEdges(u) {
		if !h.EdgeActive(e) {
			continue
		}
		pins := h.Pins(e)
		if len(pins) < 2 {
			continue
		}
		if !containsVertex(pins, v) {
			continue
		}
		sum += float64(h.EdgeWeight(e)) / float64(len(pins)-1)
	}
	if sum == 0 {
		return 0
	}
	wu := float64(h.VertexWeight(u))
	wv := float64(h.VertexWeight(v))
	return sum / (wu * wv)
}

func containsVertex(pins []hgraph.VertexId, x hgraph.VertexId) bool {
	for _, p := range pins {
		if p == x {
			return true
		}
	}
	return false
}
