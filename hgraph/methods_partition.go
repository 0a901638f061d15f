package hgraph

// ensureEdgeCapacity grows e's pinCount table to the current k, if needed.
// This covers the case where hyperedges were added before SetK.
func (h *Hypergraph) ensureEdgeCapacity(e HyperedgeId) {
	rec := &h.hyperedges[e]
	if len(rec.pinCount) >= h.k {
		return
	}
	grown := make([]int32, h.k)
	copy(grown, rec.pinCount)
	rec.pinCount = grown
}

// applyPinCountDelta adjusts Φ(e,block) by delta (±1, occasionally more
// for merged parallel edges) and maintains λ(e) and observer
// notifications. block == InvalidBlock is a no-op: unassigned pins are
// never counted in Φ.
func (h *Hypergraph) applyPinCountDelta(e HyperedgeId, block BlockId, delta int32) {
	if block == InvalidBlock || delta == 0 {
		return
	}
	h.ensureEdgeCapacity(e)
	rec := &h.hyperedges[e]
	before := rec.pinCount[block]
	after := before + delta
	rec.pinCount[block] = after
	if before == 0 && after != 0 {
		rec.connectivity++
	} else if before != 0 && after == 0 {
		rec.connectivity--
	}
	h.notifyPinCountChange(e, block, after, delta)
}

// SetNodePart assigns a previously unassigned vertex v to block j.
// Returns ErrAlreadyAssigned if b(v) != InvalidBlock, ErrVertexInactive
// if v is not active. Complexity: O(deg(v)).
func (h *Hypergraph) SetNodePart(v VertexId, j BlockId) error {
	rec := &h.vertices[v]
	if !rec.active {
		return ErrVertexInactive
	}
	if rec.block != InvalidBlock {
		return ErrAlreadyAssigned
	}
	rec.block = j
	if int(j) < len(h.blockWeight) {
		h.blockWeight[j] += rec.weight
	}
	for _, e := range rec.incidence {
		if !h.hyperedges[e].active {
			continue
		}
		h.applyPinCountDelta(e, j, 1)
	}
	return nil
}

// ChangeNodePart moves an already-assigned vertex v from block `from`
// to block `to`. Returns ErrWrongSource if b(v) != from. Updates Φ, λ,
// and W, and notifies observers. Complexity: O(deg(v)).
func (h *Hypergraph) ChangeNodePart(v VertexId, from, to BlockId) error {
	rec := &h.vertices[v]
	if !rec.active {
		return ErrVertexInactive
	}
	if rec.block != from {
		return ErrWrongSource
	}
	if from == to {
		return nil
	}
	rec.block = to
	if int(from) < len(h.blockWeight) {
		h.blockWeight[from] -= rec.weight
	}
	if to != InvalidBlock && int(to) < len(h.blockWeight) {
		h.blockWeight[to] += rec.weight
	}
	for _, e := range rec.incidence {
		if !h.hyperedges[e].active {
			continue
		}
		h.applyPinCountDelta(e, from, -1)
		h.applyPinCountDelta(e, to, 1)
	}
	return nil
}
