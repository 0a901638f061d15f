package hgraph

import "errors"

// Sentinel errors for Hypergraph operations. Callers branch on these
// with errors.Is; messages are never restringified at call sites.
var (
	// ErrAlreadyAssigned is returned by SetNodePart when v already has a block.
	ErrAlreadyAssigned = errors.New("hgraph: vertex already assigned a block")

	// ErrWrongSource is returned by ChangeNodePart when b(v) != from.
	ErrWrongSource = errors.New("hgraph: vertex is not in the expected source block")

	// ErrVertexInactive is returned when an operation targets an inactive vertex.
	ErrVertexInactive = errors.New("hgraph: vertex is not active")

	// ErrHyperedgeInactive is returned when an operation targets a disabled hyperedge.
	ErrHyperedgeInactive = errors.New("hgraph: hyperedge is not active")

	// ErrSameVertex is returned by Contract when u == v.
	ErrSameVertex = errors.New("hgraph: contract requires distinct vertices")

	// ErrBlockMismatch is returned by Contract when b(u) != b(v); an assigned
	// vertex and an unassigned one count as different blocks.
	ErrBlockMismatch = errors.New("hgraph: contract requires equal or unassigned blocks")

	// ErrEmptyHistory is returned by Uncontract when there is no memento to reverse.
	ErrEmptyHistory = errors.New("hgraph: contraction history is empty")

	// ErrStateInvariant indicates an internal bookkeeping invariant was violated.
	// This is always a bug in the caller or in hgraph itself; it is never
	// expected to occur on valid input and valid call sequences.
	ErrStateInvariant = errors.New("hgraph: internal invariant violated")
)
