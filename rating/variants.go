package rating

import "github.com/wusunjie/kahypar/hgraph"

// EdgeFrequency rates pairs the same way as HeavyEdge but additionally
// divides each hyperedge's 1/(|pins(e)|-1) contribution by how many
// hyperedges share its pin count, taken from a caller-supplied table
// (so near-ubiquitous net sizes, which carry little discriminating
// signal, contribute less).
type EdgeFrequency struct {
	SizeFrequency map[int]int64 // |pins(e)| -> occurrence count across H
}

func (r EdgeFrequency) Rate(h *hgraph.Hypergraph, u, v hgraph.VertexId) float64 {
	var sum float64
	for _, e := range h.IncidentEdges(u) {
		if !h.EdgeActive(e) {
			continue
		}
		pins := h.Pins(e)
		if len(pins) < 2 || !containsVertex(pins, v) {
			continue
		}
		freq := r.SizeFrequency[len(pins)]
		if freq <= 0 {
			freq = 1
		}
		sum += float64(h.EdgeWeight(e)) / (float64(len(pins)-1) * float64(freq))
	}
	if sum == 0 {
		return 0
	}
	wu := float64(h.VertexWeight(u))
	wv := float64(h.VertexWeight(v))
	return sum / (wu * wv)
}

// CommunityAware wraps another rating function and zeroes the rating
// for any pair spanning two different detected communities, so
// coarsening prefers contractions that stay within a community.
type CommunityAware struct {
	Base      Func
	Community func(hgraph.VertexId) int32
}

func (r CommunityAware) Rate(h *hgraph.Hypergraph, u, v hgraph.VertexId) float64 {
	if r.Community != nil && r.Community(u) != r.Community(v) {
		return 0
	}
	return r.Base.Rate(h, u, v)
}
