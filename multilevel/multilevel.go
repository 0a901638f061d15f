// Package multilevel drives the coarsen -> initial-partition ->
// uncoarsen-with-refinement loop that is the core of a multilevel
// hypergraph partitioner. It expects H to be unpartitioned on entry and
// declares k on H itself unless H already declares at least that many
// blocks.
package multilevel

import (
	"context"
	"math/rand"

	"github.com/wusunjie/kahypar/coarsening"
	"github.com/wusunjie/kahypar/hgraph"
	"github.com/wusunjie/kahypar/initpart"
	"github.com/wusunjie/kahypar/objective"
	"github.com/wusunjie/kahypar/prng"
	"github.com/wusunjie/kahypar/refinement"
)

// coarsenStream and initStream are PRNG substream tags so coarsening and
// initial partitioning draw from independent, reproducible streams of
// the same base RNG rather than racing to consume cfg.RNG directly.
const (
	coarsenStream uint64 = 1
	initStream    uint64 = 2
)

// Config bundles everything the driver needs beyond H itself.
type Config struct {
	K                  int
	LMax               []int64 // per-block weight cap, length K; a uniform cap is the same value K times
	Objective          objective.Kind
	CoarseningConfig   coarsening.Config
	InitialRuns        int
	InitialPartitioner initpart.Partitioner
	Refiner            refinement.Refiner
	RNG                *rand.Rand
}

// Partition runs the full multilevel loop on h in place. ctx is checked
// for cancellation between uncoarsening levels and forwarded to the
// coarsener and refiner, which check it between their own passes; it
// may be nil, equivalent to context.Background().
func Partition(ctx context.Context, h *hgraph.Hypergraph, cfg Config) error {
	if h.K() < cfg.K {
		h.SetK(cfg.K)
	}

	if cfg.RNG == nil {
		cfg.RNG = prng.FromSeed(0)
	}
	ccfg := cfg.CoarseningConfig
	ccfg.K = cfg.K
	if ccfg.RNG == nil {
		ccfg.RNG = prng.Derive(cfg.RNG, coarsenStream)
	}
	history, err := coarsening.Coarsen(ctx, h, ccfg)
	if err != nil {
		return err
	}

	ip := cfg.InitialPartitioner
	if ip == nil {
		ip = initpart.GreedyRegionGrowing{}
	}
	initRNG := prng.Derive(cfg.RNG, initStream)
	if err := initpart.Run(h, cfg.K, cfg.InitialRuns, cfg.Objective, ip, initRNG); err != nil {
		return err
	}

	refiner := cfg.Refiner
	if refiner == nil {
		refiner = refinement.TwoWayFM{}
		if cfg.K > 2 {
			refiner = refinement.KWayFM{}
		}
	}

	if cfg.Objective == objective.Km1 && exceedsBalance(h, cfg.K, cfg.LMax) {
		_ = refiner.Refine(ctx, h, cfg.K, cfg.LMax, cfg.Objective, cfg.RNG)
	}

	for i := len(history) - 1; i >= 0; i-- {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		m := history[i]
		inheritedBlock := h.Block(m.U)
		// Unassign the representative so Uncontract runs on the same
		// unassigned state Contract saw, then put both halves back into
		// its block; this keeps W(i) and Φ exact.
		if inheritedBlock != hgraph.InvalidBlock {
			if err := h.ChangeNodePart(m.U, inheritedBlock, hgraph.InvalidBlock); err != nil {
				return err
			}
		}
		if err := h.Uncontract(m); err != nil {
			return err
		}
		if inheritedBlock != hgraph.InvalidBlock {
			_ = h.SetNodePart(m.U, inheritedBlock)
		}
		if h.Block(m.V) == hgraph.InvalidBlock {
			_ = h.SetNodePart(m.V, inheritedBlock)
		}
		if err := refiner.Refine(ctx, h, cfg.K, cfg.LMax, cfg.Objective, cfg.RNG); err != nil {
			return err
		}
	}
	return nil
}

func exceedsBalance(h *hgraph.Hypergraph, k int, lMax []int64) bool {
	for j := 0; j < k; j++ {
		if h.BlockWeight(hgraph.BlockId(j)) > lMax[j] {
			return true
		}
	}
	return false
}
