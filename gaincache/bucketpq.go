// Package gaincache provides the O(1)-per-operation gain storage and
// extract-max priority queue the FM refiner needs: a dense gain table
// indexed by (vertex, target block), and a bucket queue keyed on
// integer gain so insert/update/remove/extractMax never touch a heap.
package gaincache

// node is one slot of a doubly linked list inside a gain bucket.
type node struct {
	prev, next int32 // indices into BucketPQ.nodes, or -1
	key        int32 // the external element id stored here
	bucket     int   // which bucket this node currently lives in, -1 if absent
}

// BucketPQ is an array-of-doubly-linked-lists priority queue indexed by
// integer gain. Gains are shifted by an offset so they can range over
// [minGain, maxGain] while indexing into a zero-based bucket array.
// Every operation (Insert, Update, Remove, ExtractMax, Contains) is O(1)
// given the element's key, apart from settleMax walking the cached max
// pointer down past buckets that have become empty; Insert is the only
// operation that raises that pointer.
type BucketPQ struct {
	heads    []int32 // heads[b] = first node index in bucket b, or -1
	tails    []int32   // tails[b] = last node index in bucket b, or -1
	nodes    []node    // dense node pool, indexed by key (one slot per possible key)
	offset   int32     // gain -> bucket index is gain+offset
	maxB     int       // index of the highest non-empty bucket, or -1 if empty
	size     int
	capacity int
}

// NewBucketPQ creates a queue that can hold up to numKeys distinct
// element ids (0..numKeys-1) with gains in [minGain, maxGain].
func NewBucketPQ(numKeys int, minGain, maxGain int32) *BucketPQ {
	span := int(maxGain-minGain) + 1
	pq := &BucketPQ{
		heads:    make([]int32, span),
		tails:    make([]int32, span),
		nodes:    make([]node, numKeys),
		offset:   -minGain,
		maxB:     -1,
		capacity: numKeys,
	}
	for i := range pq.heads {
		pq.heads[i] = -1
		pq.tails[i] = -1
	}
	for i := range pq.nodes {
		pq.nodes[i] = node{prev: -1, next: -1, bucket: -1}
	}
	return pq
}

func (pq *BucketPQ) bucketOf(gain int32) int { return int(gain + pq.offset) }

// Contains reports whether key is currently present.
func (pq *BucketPQ) Contains(key int32) bool { return pq.nodes[key].bucket >= 0 }

// Len returns the number of elements currently stored.
func (pq *BucketPQ) Len() int { return pq.size }

// Insert adds key with the given gain. key must not already be present.
func (pq *BucketPQ) Insert(key int32, gain int32) {
	b := pq.bucketOf(gain)
	pq.linkFront(key, b)
	pq.size++
	if b > pq.maxB {
		pq.maxB = b
	}
}

// Update changes key's gain in place, re-linking it into the new bucket.
func (pq *BucketPQ) Update(key int32, newGain int32) {
	pq.unlink(key)
	pq.size--
	pq.settleMax()
	pq.Insert(key, newGain)
}

// Remove deletes key from the queue. No-op if key is absent.
func (pq *BucketPQ) Remove(key int32) {
	if !pq.Contains(key) {
		return
	}
	pq.unlink(key)
	pq.size--
	pq.settleMax()
}

// ExtractMax removes and returns the key with the highest gain and that
// gain. ok is false if the queue is empty.
func (pq *BucketPQ) ExtractMax() (key int32, gain int32, ok bool) {
	if pq.size == 0 {
		return 0, 0, false
	}
	k := pq.heads[pq.maxB]
	g := int32(pq.maxB) - pq.offset
	pq.unlink(k)
	pq.size--
	pq.settleMax()
	return k, g, true
}

func (pq *BucketPQ) linkFront(key int32, b int) {
	n := &pq.nodes[key]
	n.bucket = b
	n.prev = -1
	n.next = pq.heads[b]
	if pq.heads[b] >= 0 {
		pq.nodes[pq.heads[b]].prev = key
	} else {
		pq.tails[b] = key
	}
	pq.heads[b] = key
}

func (pq *BucketPQ) unlink(key int32) {
	n := &pq.nodes[key]
	b := n.bucket
	if n.prev >= 0 {
		pq.nodes[n.prev].next = n.next
	} else {
		pq.heads[b] = n.next
	}
	if n.next >= 0 {
		pq.nodes[n.next].prev = n.prev
	} else {
		pq.tails[b] = n.prev
	}
	n.bucket = -1
	n.prev, n.next = -1, -1
}

// settleMax advances maxB down past any now-empty buckets. Amortized
// O(1) across a sequence of removals since maxB only ever decreases.
func (pq *BucketPQ) settleMax() {
	for pq.maxB >= 0 && pq.heads[pq.maxB] < 0 {
		pq.maxB--
	}
}
