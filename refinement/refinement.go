// Package refinement implements Fiduccia-Mattheyses local search over
// an already-partitioned hypergraph: boundary vertices are moved in
// gain order, locked once moved, and the pass rolls back to whichever
// prefix of moves achieved the best cumulative gain.
package refinement

import (
	"context"
	"math/rand"

	"github.com/wusunjie/kahypar/gaincache"
	"github.com/wusunjie/kahypar/hgraph"
	"github.com/wusunjie/kahypar/objective"
)

// Refiner improves an already-assigned hypergraph in place. lMax gives a
// per-block weight cap (length k); a uniform cap is simply the same
// value repeated, but recursive bisection's asymmetric (km, k-km) split
// needs distinct caps per block. ctx is checked for cancellation between
// passes, never mid-pass.
type Refiner interface {
	Refine(ctx context.Context, h *hgraph.Hypergraph, k int, lMax []int64, kind objective.Kind, rng *rand.Rand) error
}

// DoNothing is the null refiner: every level of uncoarsening can be run
// with it to benchmark the coarsening/initial-partitioning quality in
// isolation, with no local search cost.
type DoNothing struct{}

func (DoNothing) Refine(context.Context, *hgraph.Hypergraph, int, []int64, objective.Kind, *rand.Rand) error {
	return nil
}

// move records one applied vertex relocation, for rollback.
type move struct {
	v        hgraph.VertexId
	from, to hgraph.BlockId
}

// runPass executes a single FM pass: seed the queues from every
// boundary vertex, repeatedly extract the best feasible move, apply it,
// refresh gains for every vertex sharing a touched hyperedge, and
// finally roll back to the best-seen prefix. Shared by both the 2-way
// and k-way entry points; only the gain table width (2 vs k) differs.
func runPass(h *hgraph.Hypergraph, k int, lMax []int64, rng *rand.Rand) int64 {
	n := h.MaxVertexID()
	table := gaincache.NewTable(n, k)
	locked := make([]bool, n)
	queues := make([]*gaincache.BucketPQ, k)
	bound := int64(4 * int64(h.MaxEdgeID()) * maxEdgeWeight(h))
	if bound < 16 {
		bound = 16
	}
	for j := range queues {
		queues[j] = gaincache.NewBucketPQ(n, int32(-bound), int32(bound))
	}

	obs := gaincache.NewTouchObserver()
	handle := h.Subscribe(obs)
	defer h.Unsubscribe(handle)

	seedAll := func() {
		for v := 0; v < n; v++ {
			vid := hgraph.VertexId(v)
			if !h.IsActive(vid) || locked[vid] {
				continue
			}
			refreshVertex(h, vid, k, table, queues, locked)
		}
	}
	seedAll()

	var moves []move
	var cum int64
	bestCum := int64(0)
	bestPrefix := 0

	for {
		bestV, bestJ, bestGain, found := pickBestFeasibleMove(h, queues, locked, lMax)
		if !found {
			break
		}
		from := h.Block(bestV)
		if err := h.ChangeNodePart(bestV, from, bestJ); err != nil {
			removeFromAllQueues(queues, bestV)
			locked[bestV] = true
			continue
		}
		locked[bestV] = true
		removeFromAllQueues(queues, bestV)
		cum += bestGain
		moves = append(moves, move{v: bestV, from: from, to: bestJ})
		if cum > bestCum {
			bestCum = cum
			bestPrefix = len(moves)
		}

		for _, e := range obs.Drain() {
			for _, p := range h.Pins(e) {
				if !h.IsActive(p) || locked[p] {
					continue
				}
				refreshVertex(h, p, k, table, queues, locked)
			}
		}
	}

	for i := len(moves) - 1; i >= bestPrefix; i-- {
		m := moves[i]
		_ = h.ChangeNodePart(m.v, m.to, m.from)
	}

	return bestCum
}

func maxEdgeWeight(h *hgraph.Hypergraph) int64 {
	var total int64
	for e := 0; e < h.MaxEdgeID(); e++ {
		eid := hgraph.HyperedgeId(e)
		if h.EdgeActive(eid) {
			total += h.EdgeWeight(eid)
		}
	}
	if total == 0 {
		return 1
	}
	return total
}

func refreshVertex(h *hgraph.Hypergraph, v hgraph.VertexId, k int, table *gaincache.Table, queues []*gaincache.BucketPQ, locked []bool) {
	if locked[v] {
		return
	}
	from := h.Block(v)
	if from == hgraph.InvalidBlock {
		return
	}
	boundary := gaincache.IsBoundary(h, v)
	gains := gaincache.Recompute(h, v, k)
	for j := 0; j < k; j++ {
		jb := hgraph.BlockId(j)
		if jb == from {
			continue
		}
		table.Set(v, jb, gains[j])
		q := queues[j]
		if boundary {
			if q.Contains(int32(v)) {
				q.Update(int32(v), int32(clampGain(gains[j])))
			} else {
				q.Insert(int32(v), int32(clampGain(gains[j])))
			}
		} else if q.Contains(int32(v)) {
			q.Remove(int32(v))
		}
	}
}

func clampGain(g int64) int64 {
	const lim = 1 << 30
	if g > lim {
		return lim
	}
	if g < -lim {
		return -lim
	}
	return g
}

func removeFromAllQueues(queues []*gaincache.BucketPQ, v hgraph.VertexId) {
	for _, q := range queues {
		if q.Contains(int32(v)) {
			q.Remove(int32(v))
		}
	}
}

// pickBestFeasibleMove scans every block's queue head (the locally best
// candidate for that target) and returns the globally best move whose
// target block weight would stay within lMax after the move. Ties keep
// the first candidate block scanned (lowest jb) rather than preferring
// the move with the larger imbalance reduction; see DESIGN.md.
func pickBestFeasibleMove(h *hgraph.Hypergraph, queues []*gaincache.BucketPQ, locked []bool, lMax []int64) (v hgraph.VertexId, j hgraph.BlockId, gain int64, found bool) {
	bestGain := int64(-1 << 62)
	for jb, q := range queues {
		if q.Len() == 0 {
			continue
		}
		cand, g, ok := peekMax(q)
		if !ok {
			continue
		}
		vid := hgraph.VertexId(cand)
		if locked[vid] {
			continue
		}
		if h.BlockWeight(hgraph.BlockId(jb))+h.VertexWeight(vid) > lMax[jb] {
			continue
		}
		if int64(g) > bestGain {
			bestGain = int64(g)
			v, j, found = vid, hgraph.BlockId(jb), true
		}
	}
	if found {
		gain = bestGain
	}
	return
}

// peekMax extracts and immediately re-inserts the max, since BucketPQ
// exposes no non-destructive peek.
func peekMax(q *gaincache.BucketPQ) (int32, int32, bool) {
	k, g, ok := q.ExtractMax()
	if !ok {
		return 0, 0, false
	}
	q.Insert(k, g)
	return k, g, true
}
