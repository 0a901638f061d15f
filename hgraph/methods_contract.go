package hgraph

// Contract merges v into u: u absorbs v's weight, every hyperedge
// incident to v is rewritten (v's occurrence dropped if the edge
// already contains u, otherwise relabeled to u), and v is marked
// inactive. Preconditions: u != v, both active, b(u) == b(v) (this
// covers "both unassigned", since InvalidBlock == InvalidBlock).
//
// Returns a Memento sufficient for Uncontract to restore the exact
// prior state, including Φ/λ and any lazily-detected parallel-edge
// merges performed as a side effect.
//
// Complexity: O(deg(v) + Σ|pins(e)| for e touched), i.e. near-linear in
// v's pin-degree.
func (h *Hypergraph) Contract(u, v VertexId) (*Memento, error) {
	if u == v {
		return nil, ErrSameVertex
	}
	uRec := &h.vertices[u]
	vRec := &h.vertices[v]
	if !uRec.active || !vRec.active {
		return nil, ErrVertexInactive
	}
	if uRec.block != vRec.block {
		return nil, ErrBlockMismatch
	}
	block := uRec.block

	m := &Memento{
		U:                  u,
		V:                  v,
		OriginalWeightU:    uRec.weight,
		BlockAtContraction: block,
	}
	uRec.weight += vRec.weight

	// Snapshot v's incidence occurrences and replay removals against a
	// local copy (liveInc), tracking each occurrence's current slot via
	// occToLive/liveToOcc so every lookup and removal stays O(1).
	order := append([]HyperedgeId(nil), vRec.incidence...)
	liveInc := append([]HyperedgeId(nil), vRec.incidence...)
	liveToOcc := make([]int, len(liveInc))
	occToLive := make([]int, len(liveInc))
	for i := range liveToOcc {
		liveToOcc[i] = i
		occToLive[i] = i
	}
	removeLive := func(liveIdx int) {
		last := len(liveInc) - 1
		movedOcc := liveToOcc[last]
		liveInc[liveIdx] = liveInc[last]
		liveToOcc[liveIdx] = movedOcc
		occToLive[movedOcc] = liveIdx
		liveInc = liveInc[:last]
		liveToOcc = liveToOcc[:last]
	}

	uHasEdge := make(map[HyperedgeId]bool, len(h.vertices[u].incidence))
	for _, e := range h.vertices[u].incidence {
		uHasEdge[e] = true
	}

	var touched []HyperedgeId
	for occSlot, e := range order {
		liveIdx := occToLive[occSlot]
		rec := &h.hyperedges[e]
		if !rec.active {
			continue
		}

		vIdx, vHas := h.findPinVertex(e, v)
		if !vHas {
			// Invariant violation: incidence/pins mismatch.
			removeLive(liveIdx)
			continue
		}
		fpBefore := h.fingerprint(e)
		_, uHas := h.findPinVertex(e, u)

		if uHas {
			// Case A: e already contains u; drop this occurrence of v.
			rec.pins, _ = swapRemoveAt(rec.pins, vIdx)
			removeLive(liveIdx)

			fpAfter := h.fingerprint(e)
			h.deindexFingerprint(fpBefore, e)
			h.indexFingerprintAt(fpAfter, e)

			h.applyPinCountDelta(e, block, -1)

			m.Rewrites = append(m.Rewrites, rewriteRecord{
				kind:         rewriteCaseA,
				edge:         e,
				pinIdx:       vIdx,
				incIdx:       liveIdx,
				blockAtMerge: block,
				fpBefore:     fpBefore,
				fpAfter:      fpAfter,
			})
		} else {
			// Case B: relabel this occurrence of v to u.
			rec.pins[vIdx] = u
			appended := false
			if !uHasEdge[e] {
				h.vertices[u].incidence = append(h.vertices[u].incidence, e)
				uHasEdge[e] = true
				appended = true
			}

			fpAfter := h.fingerprint(e)
			h.deindexFingerprint(fpBefore, e)
			h.indexFingerprintAt(fpAfter, e)

			m.Rewrites = append(m.Rewrites, rewriteRecord{
				kind:      rewriteCaseB,
				edge:      e,
				pinIdx:    vIdx,
				uAppended: appended,
				fpBefore:  fpBefore,
				fpAfter:   fpAfter,
			})
			// incidence(v) retains this occurrence; Uncontract reactivates it verbatim.
		}
		touched = append(touched, e)
	}

	vRec.incidence = liveInc
	vRec.active = false
	h.activeVertexCount--
	h.activeVertices.Remove(uint32(v))

	// Lazy parallel-hyperedge detection over every edge touched this contraction.
	seen := make(map[HyperedgeId]bool, len(touched))
	for _, e := range touched {
		if seen[e] || !h.hyperedges[e].active {
			continue
		}
		seen[e] = true
		if rec := h.tryMergeParallel(e); rec != nil {
			m.Merges = append(m.Merges, *rec)
		}
	}

	h.history = append(h.history, m)
	return m, nil
}

// findPinVertex returns the index of the first occurrence of x in pins(e).
func (h *Hypergraph) findPinVertex(e HyperedgeId, x VertexId) (int, bool) {
	for i, p := range h.hyperedges[e].pins {
		if p == x {
			return i, true
		}
	}
	return -1, false
}

// indexFingerprintAt adds e under an explicit, already-computed
// fingerprint value, avoiding a redundant recompute.
func (h *Hypergraph) indexFingerprintAt(fp uint64, e HyperedgeId) {
	h.fingerprints[fp] = append(h.fingerprints[fp], e)
}

// tryMergeParallel merges e into a fingerprint-duplicate sibling if one
// exists among e's currently active siblings, returning the merge record
// or nil if no duplicate was found. The lower-id edge always survives,
// so repeated contractions converge deterministically regardless of scan order.
func (h *Hypergraph) tryMergeParallel(e HyperedgeId) *edgeMergeRecord {
	cand, fp := h.mergeCandidate(e)
	if cand < 0 {
		return nil
	}
	survivor, merged := cand, e
	if e < cand {
		survivor, merged = e, cand
	}
	mergedRec := &h.hyperedges[merged]
	survivorRec := &h.hyperedges[survivor]

	weightMoved := mergedRec.weight
	survivorRec.weight += weightMoved
	mergedRec.active = false
	h.activeEdgeCount--
	h.deindexFingerprint(fp, merged)

	return &edgeMergeRecord{merged: merged, into: survivor, weightMoved: weightMoved, mergedFP: fp}
}
