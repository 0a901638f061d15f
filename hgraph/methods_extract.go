package hgraph

// ExtractBlock produces the sub-hypergraph induced by the active
// vertices currently assigned to block j. The returned mapping sends
// each vertex id in the new hypergraph back to its originating vertex
// id in h; the new hypergraph's lifetime is independent of h and is not
// affected by subsequent contractions or uncontractions on h.
//
// Hyperedges that lose all their pins under the induced restriction are
// always dropped. Hyperedges left with exactly one pin are dropped only
// when dropSingletons is true: a single-pin hyperedge can never be cut
// and contributes 0 to both the cut and km1 objectives, so retaining it
// is a pure bookkeeping choice. Recursive bisection passes true for the
// km1 objective (fewer residual edges to carry through subsequent
// levels) and false for cut (cheaper to keep than to recompute if a
// caller needs the original pin multiplicity).
func (h *Hypergraph) ExtractBlock(j BlockId, dropSingletons bool) (*Hypergraph, map[VertexId]VertexId) {
	sub := New()
	oldToNew := make(map[VertexId]VertexId)
	var newToOld []VertexId

	for v := range h.vertices {
		ov := VertexId(v)
		rec := &h.vertices[v]
		if !rec.active || rec.block != j {
			continue
		}
		nv := sub.AddVertex(rec.weight)
		oldToNew[ov] = nv
		newToOld = append(newToOld, ov)
	}

	for e := range h.hyperedges {
		rec := &h.hyperedges[e]
		if !rec.active {
			continue
		}
		var pins []VertexId
		for _, p := range rec.pins {
			if nv, ok := oldToNew[p]; ok {
				pins = append(pins, nv)
			}
		}
		if len(pins) == 0 {
			continue
		}
		if len(pins) == 1 && dropSingletons {
			continue
		}
		sub.AddHyperedge(rec.weight, pins)
	}

	mapping := make(map[VertexId]VertexId, len(newToOld))
	for nv, ov := range newToOld {
		mapping[VertexId(nv)] = ov
	}
	return sub, mapping
}
