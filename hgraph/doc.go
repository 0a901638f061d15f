// Package hgraph defines the Hypergraph type: the pin-list incidence
// storage, contraction/uncontraction machinery, and partition
// bookkeeping (block weights, per-hyperedge pin counts, connectivity)
// that every other package in this module builds on.
//
// A Hypergraph H=(V,E) stores, per vertex, a weight, a current block
// assignment, an active flag, and an incidence list; per hyperedge, a
// weight and a pin list. Vertices and hyperedges are addressed by
// dense, zero-based VertexId/HyperedgeId and are never permanently
// deleted: Contract marks a vertex inactive and rewrites incident
// hyperedges, Uncontract reverses the most recent Contract exactly.
//
// Why dense arrays?
//
//   - O(1) amortized append/swap-pop removal for pin and incidence
//     lists, with the removed position recorded so Uncontract can
//     restore it exactly (see Memento).
//   - O(1) lookups for per-(hyperedge,block) pin counts Φ and
//     connectivity λ, maintained incrementally rather than recomputed.
//   - No heap-allocated graph nodes: everything is slice-indexed by
//     small integer ids, matching the pointer-graph-avoidance design
//     note for pin/incidence storage.
//
// Concurrency: Hypergraph is NOT safe for concurrent mutation. The
// core is single-threaded by specification (see the module's §5); a
// Hypergraph is exclusively owned by whichever driver is partitioning
// it.
package hgraph
