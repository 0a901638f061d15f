package hgraph

// Observer receives notifications whenever a move changes a
// hyperedge's per-block pin count. Ownership is one-way: Hypergraph
// holds only non-owning handles, never a reference back into the
// refiner's gain cache or priority queues (see design notes on
// avoiding cycles between the hypergraph and its observers).
type Observer interface {
	// OnPinCountChange fires whenever Φ(e,block) changes by delta, after
	// the hypergraph's own bookkeeping (pinCount, connectivity) has been
	// updated to its new value.
	OnPinCountChange(e HyperedgeId, block BlockId, newCount int32, delta int32)
}

type observerEntry struct {
	handle int
	obs    Observer
}

// Subscribe registers an observer and returns a handle usable with
// Unsubscribe. Observers are notified in registration order.
func (h *Hypergraph) Subscribe(o Observer) int {
	handle := h.nextObs
	h.nextObs++
	h.observers = append(h.observers, observerEntry{handle: handle, obs: o})
	return handle
}

// Unsubscribe removes the observer registered under handle. No-op if
// handle is unknown or already removed. Refiners subscribe once per
// pass and must unsubscribe when the pass ends, or stale observers
// accumulate across levels of the multilevel driver.
func (h *Hypergraph) Unsubscribe(handle int) {
	for i, e := range h.observers {
		if e.handle == handle {
			h.observers = append(h.observers[:i], h.observers[i+1:]...)
			return
		}
	}
}

// notifyPinCountChange fan-outs a Φ-change to all subscribed observers.
func (h *Hypergraph) notifyPinCountChange(e HyperedgeId, block BlockId, newCount, delta int32) {
	for _, entry := range h.observers {
		entry.obs.OnPinCountChange(e, block, newCount, delta)
	}
}
