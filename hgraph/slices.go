package hgraph

// swapRemoveAt removes the element at idx by swapping it with the last
// element and shrinking by one (O(1)). It returns the new slice and the
// removed value. Order is not preserved.
func swapRemoveAt[T any](s []T, idx int) ([]T, T) {
	removed := s[idx]
	last := len(s) - 1
	s[idx] = s[last]
	var zero T
	s[last] = zero
	return s[:last], removed
}

// swapInsertAt is the exact inverse of swapRemoveAt(idx): it grows the
// slice by one, moves whatever currently occupies idx to the new last
// slot, and places val at idx. Callers must invoke this only to reverse
// the most recent matching swapRemoveAt(idx) under strict LIFO
// (contraction-history stack) discipline; otherwise idx may no longer
// refer to the slot the original removal vacated.
func swapInsertAt[T any](s []T, idx int, val T) []T {
	var zero T
	s = append(s, zero)
	last := len(s) - 1
	s[last] = s[idx]
	s[idx] = val
	return s
}

// indexOf returns the first index of val in s, or -1.
func indexOf[T comparable](s []T, val T) int {
	for i, x := range s {
		if x == val {
			return i
		}
	}
	return -1
}
