package hgraph

// Uncontract reverses the contraction recorded by the most recent
// Memento on the history stack. It is only valid to call with the
// current top of History(); reversal replays Merges, then Rewrites, in
// exact reverse chronological order, restoring pins, incidence, Φ/λ,
// fingerprint-index membership, and v's weight/block/active flag to
// their state immediately before the matching Contract call.
//
// Returns ErrEmptyHistory if there is nothing to undo, or
// ErrStateInvariant if m is not the current top of the stack.
func (h *Hypergraph) Uncontract(m *Memento) error {
	if len(h.history) == 0 {
		return ErrEmptyHistory
	}
	top := h.history[len(h.history)-1]
	if top != m {
		return ErrStateInvariant
	}
	h.history = h.history[:len(h.history)-1]

	u, v := m.U, m.V
	uRec := &h.vertices[u]
	vRec := &h.vertices[v]

	// Merges were the last thing Contract did; undo them first.
	for i := len(m.Merges) - 1; i >= 0; i-- {
		mg := m.Merges[i]
		survivorRec := &h.hyperedges[mg.into]
		mergedRec := &h.hyperedges[mg.merged]
		survivorRec.weight -= mg.weightMoved
		mergedRec.active = true
		h.activeEdgeCount++
		h.indexFingerprintAt(mg.mergedFP, mg.merged)
	}

	// Replay pin/incidence rewrites in exact reverse chronological order.
	for i := len(m.Rewrites) - 1; i >= 0; i-- {
		rw := m.Rewrites[i]
		rec := &h.hyperedges[rw.edge]

		h.deindexFingerprint(rw.fpAfter, rw.edge)
		h.indexFingerprintAt(rw.fpBefore, rw.edge)

		switch rw.kind {
		case rewriteCaseA:
			rec.pins = swapInsertAt(rec.pins, rw.pinIdx, v)
			vRec.incidence = swapInsertAt(vRec.incidence, rw.incIdx, rw.edge)
			h.applyPinCountDelta(rw.edge, rw.blockAtMerge, 1)
		case rewriteCaseB:
			rec.pins[rw.pinIdx] = v
			if rw.uAppended {
				last := len(uRec.incidence) - 1
				uRec.incidence = uRec.incidence[:last]
			}
		}
	}

	vRec.active = true
	vRec.block = m.BlockAtContraction
	h.activeVertexCount++
	h.activeVertices.Add(uint32(v))
	uRec.weight = m.OriginalWeightU

	// A merged edge skipped every block move while inactive; recount its
	// Φ from the current blocks of its pins.
	for _, mg := range m.Merges {
		e := mg.merged
		h.ensureEdgeCapacity(e)
		rec := &h.hyperedges[e]
		for b := range rec.pinCount {
			var want int32
			for _, p := range rec.pins {
				if pr := &h.vertices[p]; pr.active && pr.block == BlockId(b) {
					want++
				}
			}
			h.applyPinCountDelta(e, BlockId(b), want-rec.pinCount[b])
		}
	}

	return nil
}
