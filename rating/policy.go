// Package rating implements the coarsener's vertex-pair scoring
// functions and the policies used to break ties among equally-rated
// candidates.
package rating

import "math/rand"

// TieBreak decides which of two equally-rated candidates to keep.
// AcceptEqual is asked when a new candidate scores the same as the
// current best; it returns true if the new candidate should replace it.
type TieBreak interface {
	AcceptEqual(r *rand.Rand) bool
}

// FirstRatingWins keeps the first-seen candidate among ties.
type FirstRatingWins struct{}

func (FirstRatingWins) AcceptEqual(*rand.Rand) bool { return false }

// LastRatingWins keeps the most-recently-seen candidate among ties.
type LastRatingWins struct{}

func (LastRatingWins) AcceptEqual(*rand.Rand) bool { return true }

// RandomRatingWins flips a coin to decide, so repeated ties are broken
// independently each time.
type RandomRatingWins struct{}

func (RandomRatingWins) AcceptEqual(r *rand.Rand) bool { return r.Intn(2) == 0 }
