package gaincache

import "github.com/wusunjie/kahypar/hgraph"

// Recompute derives gain(v→j) for every target block j != b(v) directly
// from the hypergraph's current Φ values, following the k-way km1 rule
// generalized to arbitrary (A,B):
//
//	gain(v,A,B) = Σ_{e∈I(v)} w(e)·[Φ(e,A)=1] − Σ_{e∈I(v)} w(e)·[Φ(e,B)=0]
//
// For the cut objective (k==2), this reduces to the 2-way rule in the
// single-pair case since Φ(e,A)=1 with A=b(v) happening to go to 0 is
// exactly "e leaves the cut", and Φ(e,B)=0 happening to go to 1 is
// exactly "e enters the cut" from the other side.
func Recompute(h *hgraph.Hypergraph, v hgraph.VertexId, k int) []int64 {
	gains := make([]int64, k)
	from := h.Block(v)
	for _, e := range h.IncidentEdges(v) {
		if !h.EdgeActive(e) {
			continue
		}
		w := h.EdgeWeight(e)
		removesCut := h.PinCount(e, from) == 1
		for j := 0; j < k; j++ {
			jb := hgraph.BlockId(j)
			if jb == from {
				continue
			}
			if removesCut {
				gains[j] += w
			}
			if h.PinCount(e, jb) == 0 {
				gains[j] -= w
			}
		}
	}
	return gains
}

// IsBoundary reports whether v participates in some hyperedge with
// connectivity >=2, i.e. whether it can have a nonzero gain to move.
func IsBoundary(h *hgraph.Hypergraph, v hgraph.VertexId) bool {
	for _, e := range h.IncidentEdges(v) {
		if h.EdgeActive(e) && h.Connectivity(e) >= 2 {
			return true
		}
	}
	return false
}
