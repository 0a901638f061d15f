// Package coarsening drives the rating-based vertex matching loop that
// repeatedly contracts the hypergraph until it falls at or below the
// configured contraction limit.
package coarsening

import (
	"context"
	"math"
	"math/rand"

	"github.com/wusunjie/kahypar/hgraph"
	"github.com/wusunjie/kahypar/prng"
	"github.com/wusunjie/kahypar/rating"
)

// Config bundles the tunables the coarsener needs. ContractionLimitMultiplier and
// MaxAllowedWeightMultiplier come directly from partitioner
// configuration; K is the number of blocks the eventual partition will
// target, used to derive the weight cap.
type Config struct {
	K                        int
	ContractionLimitMultiplier float64
	MaxAllowedWeightMultiplier float64
	RatingFunc                 rating.Func
	TieBreak                   rating.TieBreak
	RNG                        *rand.Rand
}

// contractionLimit returns c*k, rounded up.
func (c Config) contractionLimit() int {
	return int(math.Ceil(c.ContractionLimitMultiplier * float64(c.K)))
}

// maxAllowedNodeWeight returns ceil((s/(c·k)) · W(V)), the per-vertex
// weight cap that keeps any single contracted vertex from dominating
// a block during initial partitioning.
func (c Config) maxAllowedNodeWeight(totalWeight int64) int64 {
	denom := c.ContractionLimitMultiplier * float64(c.K)
	if denom <= 0 {
		denom = 1
	}
	v := math.Ceil((c.MaxAllowedWeightMultiplier / denom) * float64(totalWeight))
	if v < 1 {
		v = 1
	}
	return int64(v)
}

// Coarsen repeatedly shuffles the active vertex set, matches each
// unmatched vertex with its best-rated eligible neighbor, and contracts
// matched pairs, until the active vertex count falls to or below the
// contraction limit or a full pass performs no contraction. It returns
// the ordered contraction history so multilevel can uncoarsen and
// refine level by level. ctx is checked for cancellation between
// shuffle passes, never mid-pass; a canceled ctx returns whatever
// history has been built so far along with ctx.Err().
func Coarsen(ctx context.Context, h *hgraph.Hypergraph, cfg Config) ([]*hgraph.Memento, error) {
	limit := cfg.contractionLimit()
	maxWeight := cfg.maxAllowedNodeWeight(h.TotalWeight())
	rng := cfg.RNG
	if rng == nil {
		rng = prng.FromSeed(0)
	}
	ratingFn := cfg.RatingFunc
	if ratingFn == nil {
		ratingFn = rating.HeavyEdge{}
	}
	tb := cfg.TieBreak
	if tb == nil {
		tb = rating.FirstRatingWins{}
	}

	var history []*hgraph.Memento
	for h.NumVertices() > limit {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return history, err
			}
		}
		order := activeVertexOrder(h)
		prng.ShuffleInts(order, rng)

		matched := make([]bool, h.MaxVertexID())
		progressed := false

		for _, raw := range order {
			u := hgraph.VertexId(raw)
			if !h.IsActive(u) || matched[u] {
				continue
			}
			if h.VertexWeight(u) >= maxWeight {
				continue
			}
			v, _, ok := rating.BestNeighbor(h, u, ratingFn, tb, rng, matched)
			if !ok {
				continue
			}
			if h.VertexWeight(u)+h.VertexWeight(v) > maxWeight {
				continue
			}
			m, err := h.Contract(u, v)
			if err != nil {
				continue
			}
			matched[u] = true
			matched[v] = true
			history = append(history, m)
			progressed = true

			if h.NumVertices() <= limit {
				break
			}
		}

		if !progressed {
			break
		}
	}
	return history, nil
}

func activeVertexOrder(h *hgraph.Hypergraph) []int {
	active := h.ActiveVertexIDs()
	ids := make([]int, len(active))
	for i, v := range active {
		ids[i] = int(v)
	}
	return ids
}
