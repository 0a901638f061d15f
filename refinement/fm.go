package refinement

import (
	"context"
	"math/rand"

	"github.com/wusunjie/kahypar/hgraph"
	"github.com/wusunjie/kahypar/objective"
	"github.com/wusunjie/kahypar/prng"
)

// MaxPasses bounds how many FM passes a single Refine call will run,
// even if every pass still finds positive-gain prefixes.
const MaxPasses = 20

// TwoWayFM implements FM local search specialized for k==2 bipartitions,
// used inside recursive bisection.
type TwoWayFM struct{}

func (TwoWayFM) Refine(ctx context.Context, h *hgraph.Hypergraph, k int, lMax []int64, kind objective.Kind, rng *rand.Rand) error {
	return runPasses(ctx, h, 2, lMax, rng)
}

// KWayFM implements FM local search generalized to k>2 blocks directly,
// using the km1-style gain formula for every candidate target block.
type KWayFM struct{}

func (KWayFM) Refine(ctx context.Context, h *hgraph.Hypergraph, k int, lMax []int64, kind objective.Kind, rng *rand.Rand) error {
	return runPasses(ctx, h, k, lMax, rng)
}

func runPasses(ctx context.Context, h *hgraph.Hypergraph, k int, lMax []int64, rng *rand.Rand) error {
	if rng == nil {
		rng = prng.FromSeed(0)
	}
	for pass := 0; pass < MaxPasses; pass++ {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		gain := runPass(h, k, lMax, rng)
		if gain < 1 {
			break
		}
	}
	return nil
}
