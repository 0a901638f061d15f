package hgraph

// AddVertex appends a new active vertex with the given weight (must be
// ≥1) and returns its VertexId. Complexity: O(1) amortized.
func (h *Hypergraph) AddVertex(weight int64) VertexId {
	id := VertexId(len(h.vertices))
	h.vertices = append(h.vertices, vertexRecord{
		weight: weight,
		block:  InvalidBlock,
		active: true,
	})
	h.activeVertices.Add(uint32(id))
	h.activeVertexCount++
	h.totalW += weight
	return id
}

// SetVertexWeight overrides v's weight. Only valid before v has been
// assigned to a block (callers loading per-vertex weights from an input
// file do so right after AddVertex, before any SetNodePart call).
func (h *Hypergraph) SetVertexWeight(v VertexId, weight int64) {
	rec := &h.vertices[v]
	h.totalW += weight - rec.weight
	rec.weight = weight
}

// AddHyperedge appends a new active hyperedge with the given weight
// (must be ≥1) and pin list, wiring up incidence lists on every pin.
// Duplicate pins are permitted. Complexity: O(|pins|).
func (h *Hypergraph) AddHyperedge(weight int64, pins []VertexId) HyperedgeId {
	id := HyperedgeId(len(h.hyperedges))
	cpy := append([]VertexId(nil), pins...)
	rec := hyperedgeRecord{
		weight: weight,
		active: true,
		pins:   cpy,
	}
	if h.k > 0 {
		rec.pinCount = make([]int32, h.k)
	}
	h.hyperedges = append(h.hyperedges, rec)
	h.activeEdgeCount++
	for _, v := range cpy {
		h.vertices[v].incidence = append(h.vertices[v].incidence, id)
	}
	h.indexFingerprint(id)
	return id
}
