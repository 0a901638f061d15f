// Package partitioner is the top-level entry point: given a hypergraph
// and a fully resolved configuration, it picks between the direct
// multilevel driver (k==2, or k>2 with mode=="direct") and the
// recursive-bisection driver (k>2 with mode=="recursive_bisection", the
// default for k>2) and runs it to completion.
package partitioner

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/wusunjie/kahypar/coarsening"
	"github.com/wusunjie/kahypar/hgraph"
	"github.com/wusunjie/kahypar/initpart"
	"github.com/wusunjie/kahypar/multilevel"
	"github.com/wusunjie/kahypar/objective"
	"github.com/wusunjie/kahypar/recursivebisection"
	"github.com/wusunjie/kahypar/refinement"
)

// ErrInfeasible is returned when no feasible partition exists under the
// given epsilon; it can only surface from the root call, matching
// recursive bisection's "catch only at the root frame" contract.
var ErrInfeasible = errors.New("partitioner: no feasible partition under given epsilon")

// Mode selects which driver handles k>2. Direct always runs the
// multilevel driver at the target k; RecursiveBisection (the default)
// splits into a binary tree of 2-way bisections.
type Mode string

const (
	Direct             Mode = "direct"
	RecursiveBisection Mode = "recursive_bisection"
)

// Config mirrors the subset of configuration the partitioner needs to
// construct a driver-specific Config and dispatch to it.
type Config struct {
	K                  int
	Epsilon            float64
	Objective          objective.Kind
	Mode               Mode
	CoarseningConfig   coarsening.Config
	InitialRuns        int
	InitialPartitioner initpart.Partitioner
	Refiner            refinement.Refiner
	RNG                *rand.Rand
}

// Partition assigns every active vertex of h to a block in [0,cfg.K).
// h carries no partition state on entry.
func Partition(ctx context.Context, h *hgraph.Hypergraph, cfg Config) error {
	if cfg.K < 2 {
		return fmt.Errorf("partitioner: k must be >=2, got %d", cfg.K)
	}

	mode := cfg.Mode
	if mode == "" {
		mode = RecursiveBisection
	}

	if cfg.K == 2 || mode == Direct {
		lMax := uniformCap(h.TotalWeight(), cfg.K, cfg.Epsilon)
		mcfg := multilevel.Config{
			K:                  cfg.K,
			LMax:               lMax,
			Objective:          cfg.Objective,
			CoarseningConfig:   cfg.CoarseningConfig,
			InitialRuns:        cfg.InitialRuns,
			InitialPartitioner: cfg.InitialPartitioner,
			Refiner:            cfg.Refiner,
			RNG:                cfg.RNG,
		}
		if err := multilevel.Partition(ctx, h, mcfg); err != nil {
			return wrapInfeasible(err)
		}
		return nil
	}

	rcfg := recursivebisection.Config{
		K:                  cfg.K,
		Epsilon:            cfg.Epsilon,
		Objective:          cfg.Objective,
		CoarseningConfig:   cfg.CoarseningConfig,
		InitialRuns:        cfg.InitialRuns,
		InitialPartitioner: cfg.InitialPartitioner,
		Refiner:            cfg.Refiner,
		RNG:                cfg.RNG,
	}
	if err := recursivebisection.Partition(ctx, h, rcfg); err != nil {
		return wrapInfeasible(err)
	}
	return nil
}

// uniformCap computes a single (1+eps)*ceil(W/k) cap applied to every
// block, used for the direct (non-bisection) path where no asymmetric
// split exists.
func uniformCap(total int64, k int, eps float64) []int64 {
	perBlock := ceilDiv(total, int64(k))
	blockCap := int64(float64(perBlock) * (1 + eps))
	if blockCap < perBlock {
		blockCap = perBlock
	}
	caps := make([]int64, k)
	for i := range caps {
		caps[i] = blockCap
	}
	return caps
}

func ceilDiv(a, b int64) int64 {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

// wrapInfeasible reclassifies a hgraph.ErrStateInvariant surfacing from
// an inner driver into ErrInfeasible: per the error taxonomy, an
// internal invariant violation inside coarsening/refinement is always a
// bug, but a driver returning it at the top level after initial
// partitioning could not find ANY feasible assignment is reported to
// callers as infeasibility, not as a fatal bug.
func wrapInfeasible(err error) error {
	if errors.Is(err, hgraph.ErrStateInvariant) {
		return fmt.Errorf("%w: %v", ErrInfeasible, err)
	}
	return err
}
