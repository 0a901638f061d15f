package gaincache

import "github.com/wusunjie/kahypar/hgraph"

// TouchObserver subscribes to a Hypergraph's Φ-change notifications and
// accumulates the set of hyperedges touched since the last drain. The
// refiner drains it after every move and recomputes gains only for pins
// of touched edges, matching "update gains of all vertices sharing a
// hyperedge with v" without the gain cache needing to re-derive which
// pin moved from the raw Φ delta.
type TouchObserver struct {
	touched map[hgraph.HyperedgeId]struct{}
}

// NewTouchObserver creates an empty observer ready for Subscribe.
func NewTouchObserver() *TouchObserver {
	return &TouchObserver{touched: make(map[hgraph.HyperedgeId]struct{})}
}

// OnPinCountChange implements hgraph.Observer.
func (o *TouchObserver) OnPinCountChange(e hgraph.HyperedgeId, _ hgraph.BlockId, _ int32, _ int32) {
	o.touched[e] = struct{}{}
}

// Drain returns every edge touched since the last Drain and clears the set.
func (o *TouchObserver) Drain() []hgraph.HyperedgeId {
	out := make([]hgraph.HyperedgeId, 0, len(o.touched))
	for e := range o.touched {
		out = append(out, e)
	}
	o.touched = make(map[hgraph.HyperedgeId]struct{})
	return out
}
