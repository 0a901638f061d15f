package hgraph

// rewriteKind distinguishes the two ways a touched hyperedge can be
// rewritten during a Contract.
type rewriteKind uint8

const (
	// rewriteCaseA: e already contained u; v's occurrence was dropped
	// from pins(e) and from incidence(v).
	rewriteCaseA rewriteKind = iota
	// rewriteCaseB: e did not contain u; v's occurrence in pins(e) was
	// relabeled to u, and (conditionally) e was appended to incidence(u).
	rewriteCaseB
)

// rewriteRecord captures the undo information for a single touched
// hyperedge occurrence. Records are appended to Memento.Rewrites in the
// exact chronological order Contract applied them, so Uncontract can
// replay them in exact reverse order regardless of how case A and case B
// occurrences interleave within one edge or across edges.
type rewriteRecord struct {
	kind   rewriteKind
	edge   HyperedgeId
	pinIdx int // position in pins(e) touched by this rewrite

	// case A only
	incIdx       int // position in incidence(v) that e occupied
	blockAtMerge BlockId

	// case B only
	uAppended bool

	fpBefore uint64
	fpAfter  uint64
}

// edgeMergeRecord captures a lazily-detected parallel-hyperedge merge
// performed as a side effect of a contraction: `merged` was deactivated
// and its weight folded into `into`.
type edgeMergeRecord struct {
	merged      HyperedgeId
	into        HyperedgeId
	weightMoved int64
	mergedFP    uint64
}

// Memento records everything needed to exactly undo one Contract call.
type Memento struct {
	U, V               VertexId
	OriginalWeightU    int64
	BlockAtContraction BlockId // b(u)==b(v) (or InvalidBlock) at the time of this contraction

	Rewrites []rewriteRecord
	Merges   []edgeMergeRecord
}

// History returns a read-only view of the contraction history stack,
// ordered oldest-first; the last element is the next Uncontract target.
func (h *Hypergraph) History() []*Memento { return h.history }
