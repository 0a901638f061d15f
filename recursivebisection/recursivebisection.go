// Package recursivebisection partitions into k>2 blocks by repeated
// bisection: each subproblem is split in half, and each half is
// recursively split again, until every subproblem targets exactly one
// block. The recursion is driven as an explicit frame stack rather than
// native call recursion, since each frame owns a sub-hypergraph whose
// lifetime must end exactly when the frame pops, and the original input
// hypergraph must survive the whole run untouched by that ownership
// discipline.
package recursivebisection

import (
	"context"
	"math"
	"math/rand"

	"github.com/wusunjie/kahypar/coarsening"
	"github.com/wusunjie/kahypar/hgraph"
	"github.com/wusunjie/kahypar/initpart"
	"github.com/wusunjie/kahypar/multilevel"
	"github.com/wusunjie/kahypar/objective"
	"github.com/wusunjie/kahypar/prng"
	"github.com/wusunjie/kahypar/refinement"
)

// Config bundles the tunables a bisection subproblem needs at every
// level of the recursion; the same template is reused for every
// two-way split, only k/epsilon/target weights change per frame.
type Config struct {
	K                  int
	Epsilon            float64
	Objective          objective.Kind
	CoarseningConfig   coarsening.Config
	InitialRuns        int
	InitialPartitioner initpart.Partitioner
	Refiner            refinement.Refiner
	RNG                *rand.Rand
}

type state int

const (
	unpartitioned state = iota
	part1Extracted
	finished
)

// frame is one subproblem on the explicit recursion stack. mapping
// translates this frame's sub-hypergraph vertex ids back to the
// immediately enclosing frame's vertex id space; it is nil for the
// root frame, whose sub IS the caller's hypergraph.
type frame struct {
	sub            *hgraph.Hypergraph
	st             state
	lowerK, upperK int
	mapping        map[hgraph.VertexId]hgraph.VertexId
}

func (f *frame) k() int { return f.upperK - f.lowerK + 1 }

// Partition assigns every active vertex of h to a block in
// [0,cfg.K) by recursive bisection. h carries no partition state on
// entry. ctx is checked for cancellation between stack frames and
// forwarded to each bisection's multilevel.Partition call; it may be
// nil, equivalent to context.Background().
func Partition(ctx context.Context, h *hgraph.Hypergraph, cfg Config) error {
	h.SetK(cfg.K)
	if cfg.RNG == nil {
		cfg.RNG = prng.FromSeed(0)
	}
	w0 := h.TotalWeight()
	k0 := cfg.K

	stack := []*frame{{sub: h, st: unpartitioned, lowerK: 0, upperK: cfg.K - 1}}

	for len(stack) > 0 {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		top := stack[len(stack)-1]

		if top.lowerK == top.upperK {
			assignLeaf(h, stack, len(stack)-1, top.lowerK)
			stack = stack[:len(stack)-1]
			continue
		}

		switch top.st {
		case unpartitioned:
			k := top.k()
			km := k / 2
			wCur := top.sub.TotalWeight()
			eps := relaxedEpsilon(w0, k0, wCur, k, cfg.Epsilon)

			target0 := proportional(wCur, km, k)
			target1 := wCur - target0
			lMax := []int64{
				weightCap(target0, eps),
				weightCap(target1, eps),
			}

			sub := top.sub
			mcfg := multilevel.Config{
				K:                  2,
				LMax:               lMax,
				Objective:          cfg.Objective,
				CoarseningConfig:   cfg.CoarseningConfig,
				InitialRuns:        cfg.InitialRuns,
				InitialPartitioner: cfg.InitialPartitioner,
				Refiner:            cfg.Refiner,
				RNG:                prng.Derive(cfg.RNG, frameStream(top.lowerK, top.upperK)),
			}
			if err := multilevel.Partition(ctx, sub, mcfg); err != nil {
				return err
			}

			dropSingletons := cfg.Objective == objective.Km1
			sub1, mapping1 := sub.ExtractBlock(1, dropSingletons)
			top.st = part1Extracted
			stack = append(stack, &frame{
				sub:     sub1,
				st:      unpartitioned,
				lowerK:  top.lowerK + km,
				upperK:  top.upperK,
				mapping: mapping1,
			})

		case part1Extracted:
			km := top.k() / 2
			dropSingletons := cfg.Objective == objective.Km1
			sub0, mapping0 := top.sub.ExtractBlock(0, dropSingletons)
			top.st = finished
			stack = append(stack, &frame{
				sub:     sub0,
				st:      unpartitioned,
				lowerK:  top.lowerK,
				upperK:  top.lowerK + km - 1,
				mapping: mapping0,
			})

		case finished:
			stack = stack[:len(stack)-1]
		}
	}
	return nil
}

// assignLeaf walks every active vertex of the leaf frame's
// sub-hypergraph back up through the stacked extraction mappings to
// its vertex id in the original root hypergraph h, then assigns (or
// reassigns) that vertex to block lowerK.
func assignLeaf(h *hgraph.Hypergraph, stack []*frame, idx int, block int) {
	leaf := stack[idx]
	for v := 0; v < leaf.sub.MaxVertexID(); v++ {
		vid := hgraph.VertexId(v)
		if !leaf.sub.IsActive(vid) {
			continue
		}
		orig := translateToRoot(stack, idx, vid)
		target := hgraph.BlockId(block)
		if cur := h.Block(orig); cur != target {
			if cur == hgraph.InvalidBlock {
				_ = h.SetNodePart(orig, target)
			} else {
				_ = h.ChangeNodePart(orig, cur, target)
			}
		}
	}
}

func translateToRoot(stack []*frame, idx int, vid hgraph.VertexId) hgraph.VertexId {
	for i := idx; i > 0; i-- {
		vid = stack[i].mapping[vid]
	}
	return vid
}

// relaxedEpsilon computes the per-level balance tolerance that, once
// propagated through ⌈log2 k⌉ further bisections, still yields the
// root-level epsilon0 at the leaves.
func relaxedEpsilon(w0 int64, k0 int, wCur int64, k int, eps0 float64) float64 {
	perfect0 := math.Ceil(float64(w0) / float64(k0))
	perfectCur := math.Ceil(float64(wCur) / float64(k))
	if perfectCur == 0 {
		perfectCur = 1
	}
	base := (perfect0 / perfectCur) * (1 + eps0)
	depth := math.Ceil(math.Log2(float64(k)))
	if depth < 1 {
		depth = 1
	}
	val := math.Pow(base, 1/depth) - 1
	if val > 0.99 {
		val = 0.99
	}
	if val < 0 {
		val = 0
	}
	return val
}

// proportional returns a weight share of total proportional to
// numBlocks/totalBlocks, rounded to the nearest integer.
func proportional(total int64, numBlocks, totalBlocks int) int64 {
	return int64(math.Round(float64(total) * float64(numBlocks) / float64(totalBlocks)))
}

func weightCap(target int64, eps float64) int64 {
	v := math.Ceil(float64(target) * (1 + eps))
	if v < target {
		v = float64(target)
	}
	return int64(v)
}

// frameStream derives a PRNG substream tag unique to a frame's block
// range, so independent subproblems at different recursion depths
// still draw reproducible, non-colliding random streams from one seed.
func frameStream(lower, upper int) uint64 {
	return uint64(lower)<<32 ^ uint64(upper) ^ 0x9E3779B97F4A7C15
}
