// Package initpart provides the initial partitioner abstraction used
// once a hypergraph has been coarsened down to its coarsest level: an
// implementation assigns every active vertex to a block, and a
// best-of-n driver runs it multiple times and keeps the lowest-objective
// result.
package initpart

import (
	"math/rand"

	"github.com/wusunjie/kahypar/hgraph"
	"github.com/wusunjie/kahypar/objective"
)

// Partitioner assigns every active vertex of h to a block in [0,k).
// Implementations must call h.SetNodePart exactly once per active
// vertex (h carries no partition state on entry) and may use rng for
// any randomized decisions.
type Partitioner interface {
	Partition(h *hgraph.Hypergraph, k int, rng *rand.Rand) error
}

// Run drives Partitioner p for nruns attempts, keeping the assignment
// with the lowest value of kind, then applies the best assignment to h.
// Each attempt starts from a clean slate: h's prior assignment (if any)
// is discarded before every run via resetPartition.
func Run(h *hgraph.Hypergraph, k int, nruns int, kind objective.Kind, p Partitioner, rng *rand.Rand) error {
	if nruns < 1 {
		nruns = 1
	}
	n := h.MaxVertexID()
	best := make([]hgraph.BlockId, n)
	bestScore := int64(-1)
	found := false

	for i := 0; i < nruns; i++ {
		resetPartition(h)
		if err := p.Partition(h, k, rng); err != nil {
			return err
		}
		score := objective.Evaluate(h, kind)
		if !found || score < bestScore {
			found = true
			bestScore = score
			for _, vid := range h.ActiveVertexIDs() {
				best[vid] = h.Block(vid)
			}
		}
	}

	resetPartition(h)
	for _, vid := range h.ActiveVertexIDs() {
		if err := h.SetNodePart(vid, best[vid]); err != nil {
			return err
		}
	}
	return nil
}

// resetPartition moves every active, currently-assigned vertex back to
// InvalidBlock so the next attempt starts unassigned.
func resetPartition(h *hgraph.Hypergraph) {
	for _, vid := range h.ActiveVertexIDs() {
		if b := h.Block(vid); b != hgraph.InvalidBlock {
			_ = h.ChangeNodePart(vid, b, hgraph.InvalidBlock)
		}
	}
}
