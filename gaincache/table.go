package gaincache

import "github.com/wusunjie/kahypar/hgraph"

// Table is a dense gain cache indexed by (vertex, target block). For
// 2-way refinement k==2 and every vertex has exactly one meaningful
// target (the other block); for k-way refinement every (v, j) pair with
// j != b(v) can carry a gain. The cache does not itself decide which
// entries are "active" (on the boundary) — that's tracked by the
// BucketPQ each table is usually paired with.
type Table struct {
	k      int
	n      int
	values []int64 // values[v*k+j]
}

// NewTable allocates a dense n x k gain table, all zeroed.
func NewTable(n, k int) *Table {
	return &Table{k: k, n: n, values: make([]int64, n*k)}
}

func (t *Table) idx(v hgraph.VertexId, j hgraph.BlockId) int { return int(v)*t.k + int(j) }

// Gain returns the cached gain of moving v to block j.
func (t *Table) Gain(v hgraph.VertexId, j hgraph.BlockId) int64 { return t.values[t.idx(v, j)] }

// Set overwrites the cached gain of moving v to block j.
func (t *Table) Set(v hgraph.VertexId, j hgraph.BlockId, gain int64) { t.values[t.idx(v, j)] = gain }

// Add applies delta to the cached gain of moving v to block j and
// returns the new value.
func (t *Table) Add(v hgraph.VertexId, j hgraph.BlockId, delta int64) int64 {
	i := t.idx(v, j)
	t.values[i] += delta
	return t.values[i]
}

// Reset zeroes every entry, reusing the backing array.
func (t *Table) Reset() {
	for i := range t.values {
		t.values[i] = 0
	}
}
