package initpart

import (
	"math/rand"

	"github.com/wusunjie/kahypar/hgraph"
)

// GreedyRegionGrowing grows each block outward from an independently
// chosen random seed vertex via breadth-first traversal over the
// hypergraph's pin adjacency, assigning vertices to the block whose
// frontier reaches them first, until every block has accumulated its
// target share of the total weight (or no block has any frontier left,
// in which case leftover vertices round-robin onto whichever block is
// currently lightest).
type GreedyRegionGrowing struct {
	// TargetWeight, if set, overrides the default equal 1/k split; its
	// length must equal k.
	TargetWeight []int64
}

type frontierItem struct {
	v     hgraph.VertexId
	block hgraph.BlockId
}

func (g GreedyRegionGrowing) Partition(h *hgraph.Hypergraph, k int, rng *rand.Rand) error {
	active := collectActive(h)
	if len(active) == 0 {
		return nil
	}

	targets := g.TargetWeight
	if len(targets) != k {
		targets = equalShares(h.TotalWeight(), k)
	}

	seeds := pickSeeds(active, k, rng)
	visited := make(map[hgraph.VertexId]bool, len(active))
	queue := make([]frontierItem, 0, len(active))
	blockWeight := make([]int64, k)

	assign := func(v hgraph.VertexId, b hgraph.BlockId) {
		if visited[v] {
			return
		}
		visited[v] = true
		if err := h.SetNodePart(v, b); err != nil {
			return
		}
		blockWeight[b] += h.VertexWeight(v)
	}

	for j, s := range seeds {
		assign(s, hgraph.BlockId(j))
		queue = append(queue, frontierItem{v: s, block: hgraph.BlockId(j)})
	}

	for head := 0; head < len(queue); head++ {
		item := queue[head]
		if blockWeight[item.block] >= targets[item.block] {
			continue
		}
		for _, e := range h.IncidentEdges(item.v) {
			if !h.EdgeActive(e) {
				continue
			}
			for _, nb := range h.Pins(e) {
				if nb == item.v || visited[nb] || !h.IsActive(nb) {
					continue
				}
				if blockWeight[item.block] >= targets[item.block] {
					break
				}
				assign(nb, item.block)
				queue = append(queue, frontierItem{v: nb, block: item.block})
			}
		}
	}

	// Any vertex the frontier never reached (disconnected components,
	// or every target already met) goes to the lightest block.
	for _, v := range active {
		if visited[v] {
			continue
		}
		lightest := hgraph.BlockId(0)
		for j := 1; j < k; j++ {
			if blockWeight[j] < blockWeight[lightest] {
				lightest = hgraph.BlockId(j)
			}
		}
		assign(v, lightest)
	}
	return nil
}

func collectActive(h *hgraph.Hypergraph) []hgraph.VertexId {
	out := make([]hgraph.VertexId, 0, h.NumVertices())
	for v := 0; v < h.MaxVertexID(); v++ {
		vid := hgraph.VertexId(v)
		if h.IsActive(vid) {
			out = append(out, vid)
		}
	}
	return out
}

func equalShares(total int64, k int) []int64 {
	shares := make([]int64, k)
	base := total / int64(k)
	rem := total % int64(k)
	for j := range shares {
		shares[j] = base
		if int64(j) < rem {
			shares[j]++
		}
	}
	return shares
}

func pickSeeds(active []hgraph.VertexId, k int, rng *rand.Rand) []hgraph.VertexId {
	seeds := make([]hgraph.VertexId, 0, k)
	used := make(map[hgraph.VertexId]bool, k)
	for len(seeds) < k && len(seeds) < len(active) {
		idx := rng.Intn(len(active))
		v := active[idx]
		if used[v] {
			continue
		}
		used[v] = true
		seeds = append(seeds, v)
	}
	// Fewer active vertices than blocks: pad with active[0] so there is
	// one seed per block; assign skips a vertex already visited, so the
	// padded blocks start with no seed vertex.
	for len(seeds) < k {
		seeds = append(seeds, active[0])
	}
	return seeds
}
