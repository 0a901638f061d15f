package hgraph

import "github.com/RoaringBitmap/roaring/v2"

// VertexId identifies a vertex by its dense, zero-based index.
type VertexId int32

// HyperedgeId identifies a hyperedge by its dense, zero-based index.
type HyperedgeId int32

// PinIndex identifies the position of a pin within a hyperedge's pin list.
type PinIndex int32

// BlockId identifies a partition block.
type BlockId int32

// InvalidBlock is the sentinel for "not yet assigned".
const InvalidBlock BlockId = -1

// vertexRecord holds per-vertex mutable state.
type vertexRecord struct {
	weight    int64
	block     BlockId
	active    bool
	incidence []HyperedgeId // may contain duplicates; order is not semantically meaningful
}

// hyperedgeRecord holds per-hyperedge mutable state.
type hyperedgeRecord struct {
	weight int64
	active bool
	pins   []VertexId // may contain duplicate vertex ids (repeated pins)

	// pinCount[i] = Φ(e,i): number of active pins currently assigned to block i.
	// Sized to k once k is known; grows on demand via ensureEdgeCapacity.
	pinCount []int32
	// connectivity = λ(e) = number of blocks i with pinCount[i] > 0.
	connectivity int32
}

// Hypergraph is the core in-memory hypergraph: incidence storage plus
// contraction/uncontraction and partition bookkeeping.
//
// Zero value is not usable; construct with New.
type Hypergraph struct {
	k int // number of blocks; 0 until SetK is called

	vertices   []vertexRecord
	hyperedges []hyperedgeRecord

	activeVertexCount int
	activeEdgeCount   int
	totalW            int64

	blockWeight []int64 // length k; W(i)

	// activeVertices mirrors the active flags of vertices as a bitmap,
	// rebuilt incrementally alongside vertexRecord.active. Purely a derived
	// index: dense arrays above remain authoritative.
	activeVertices *roaring.Bitmap

	history []*Memento

	observers []observerEntry
	nextObs   int

	// fingerprint index for lazy parallel-hyperedge detection, keyed by a
	// 64-bit hash of the sorted, deduplicated pin set of an active edge.
	fingerprints map[uint64][]HyperedgeId
}

// New creates an empty Hypergraph with no vertices or hyperedges.
// k (the number of blocks) is set later via SetK, typically by the
// driver once it knows how many blocks this (sub)problem targets.
func New() *Hypergraph {
	return &Hypergraph{
		activeVertices: roaring.New(),
		fingerprints:   make(map[uint64][]HyperedgeId),
	}
}

// SetK declares the number of blocks this hypergraph will be
// partitioned into. It must be called before any SetNodePart and must
// not be called twice with different values while vertices are assigned.
func (h *Hypergraph) SetK(k int) {
	if k == h.k {
		return
	}
	h.k = k
	h.blockWeight = make([]int64, k)
	for ei := range h.hyperedges {
		h.hyperedges[ei].pinCount = make([]int32, k)
		h.hyperedges[ei].connectivity = 0
	}
}

// K reports the configured number of blocks (0 if SetK was never called).
func (h *Hypergraph) K() int { return h.k }

// NumVertices returns the number of currently active vertices.
func (h *Hypergraph) NumVertices() int { return h.activeVertexCount }

// NumEdges returns the number of currently active hyperedges.
func (h *Hypergraph) NumEdges() int { return h.activeEdgeCount }

// MaxEdgeID returns the number of hyperedges ever allocated (active or
// merged away). Callers that need to enumerate every edge id, e.g. to
// compute a global objective, iterate 0..MaxEdgeID()-1 and skip ids
// where EdgeActive is false, since NumEdges alone does not bound the id
// range once merges have deactivated interior ids.
func (h *Hypergraph) MaxEdgeID() int { return len(h.hyperedges) }

// MaxVertexID returns the number of vertices ever allocated (active or
// contracted away). See MaxEdgeID for why NumVertices is insufficient
// for id-range iteration.
func (h *Hypergraph) MaxVertexID() int { return len(h.vertices) }

// TotalWeight returns Σ_active w(v).
func (h *Hypergraph) TotalWeight() int64 { return h.totalW }

// BlockWeight returns W(i), the sum of weights of active vertices in block i.
func (h *Hypergraph) BlockWeight(i BlockId) int64 {
	if i < 0 || int(i) >= len(h.blockWeight) {
		return 0
	}
	return h.blockWeight[i]
}

// VertexWeight returns w(v).
func (h *Hypergraph) VertexWeight(v VertexId) int64 { return h.vertices[v].weight }

// IsActive reports whether v is currently active.
func (h *Hypergraph) IsActive(v VertexId) bool { return h.vertices[v].active }

// ActiveVertexIDs returns the ids of every currently active vertex, in
// ascending order. Backed by the activeVertices bitmap rather than a
// linear scan of every vertex ever allocated, so callers that need to
// enumerate the live vertex set (initial partitioning, coarsening's
// shuffle order, community detection) don't pay for contracted-away ids.
func (h *Hypergraph) ActiveVertexIDs() []VertexId {
	raw := h.activeVertices.ToArray()
	ids := make([]VertexId, len(raw))
	for i, v := range raw {
		ids[i] = VertexId(v)
	}
	return ids
}

// Block returns b(v), or InvalidBlock if v is unassigned.
func (h *Hypergraph) Block(v VertexId) BlockId { return h.vertices[v].block }

// EdgeWeight returns w(e).
func (h *Hypergraph) EdgeWeight(e HyperedgeId) int64 { return h.hyperedges[e].weight }

// EdgeActive reports whether e is currently active (not merged away into a
// parallel edge; an edge reduced to a single pin by contraction stays active).
func (h *Hypergraph) EdgeActive(e HyperedgeId) bool { return h.hyperedges[e].active }

// PinCount returns Φ(e,i).
func (h *Hypergraph) PinCount(e HyperedgeId, i BlockId) int32 {
	pc := h.hyperedges[e].pinCount
	if i < 0 || int(i) >= len(pc) {
		return 0
	}
	return pc[i]
}

// Connectivity returns λ(e).
func (h *Hypergraph) Connectivity(e HyperedgeId) int32 { return h.hyperedges[e].connectivity }

// Pins returns the active pin list of e. The returned slice is a live
// view into the hypergraph's storage and must not be mutated by callers;
// it may contain duplicate vertex ids.
func (h *Hypergraph) Pins(e HyperedgeId) []VertexId { return h.hyperedges[e].pins }

// IncidentEdges returns the incidence list of v: the hyperedges that
// contain v as a pin (with multiplicity). The returned slice is a live
// view and must not be mutated by callers.
func (h *Hypergraph) IncidentEdges(v VertexId) []HyperedgeId { return h.vertices[v].incidence }
