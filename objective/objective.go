// Package objective computes the partition-quality metrics the rest of
// the partitioner optimizes against: hyperedge cut, connectivity minus
// one (km1), and sum of external degrees (soed).
package objective

import "github.com/wusunjie/kahypar/hgraph"

// Kind identifies which objective a run is optimizing.
type Kind string

const (
	Cut  Kind = "cut"
	Km1  Kind = "km1"
	Soed Kind = "soed"
)

// Cut returns Σ w(e) over every active hyperedge with connectivity ≥2.
// Single-vertex hyperedges (connectivity ≤1) contribute nothing.
func Cut(h *hgraph.Hypergraph) int64 {
	var total int64
	for e := 0; e < h.MaxEdgeID(); e++ {
		eid := hgraph.HyperedgeId(e)
		if !h.EdgeActive(eid) {
			continue
		}
		if h.Connectivity(eid) >= 2 {
			total += h.EdgeWeight(eid)
		}
	}
	return total
}

// Km1 returns Σ w(e)·(λ(e)−1) over every active hyperedge.
func Km1(h *hgraph.Hypergraph) int64 {
	var total int64
	for e := 0; e < h.MaxEdgeID(); e++ {
		eid := hgraph.HyperedgeId(e)
		if !h.EdgeActive(eid) {
			continue
		}
		lambda := int64(h.Connectivity(eid))
		if lambda > 0 {
			total += h.EdgeWeight(eid) * (lambda - 1)
		}
	}
	return total
}

// Soed returns Σ w(e)·λ(e) over every active hyperedge with connectivity
// ≥2 (the sum-of-external-degrees objective).
func Soed(h *hgraph.Hypergraph) int64 {
	var total int64
	for e := 0; e < h.MaxEdgeID(); e++ {
		eid := hgraph.HyperedgeId(e)
		if !h.EdgeActive(eid) {
			continue
		}
		lambda := int64(h.Connectivity(eid))
		if lambda >= 2 {
			total += h.EdgeWeight(eid) * lambda
		}
	}
	return total
}

// Evaluate dispatches to the metric named by kind.
func Evaluate(h *hgraph.Hypergraph, kind Kind) int64 {
	switch kind {
	case Km1:
		return Km1(h)
	case Soed:
		return Soed(h)
	default:
		return Cut(h)
	}
}
