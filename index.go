// Package ragged manipulates ragged arrays: flat slices of observations
// partitioned into variable-length rows by a row-size vector. All operations
// agree on one indexing convention, the cumulative sums of row sizes, which
// are recomputed on demand and never cached.
package ragged

import (
	"fmt"
	"sort"
)

// Offsets converts a row-size vector into boundary offsets. The result has
// length len(rowsize)+1, starts at 0, and ends at the total observation
// count; row i occupies the half-open range [offsets[i], offsets[i+1]).
// An empty row-size vector yields [0].
func Offsets(rowsize []int) []int {
	offsets := make([]int, len(rowsize)+1)
	for i, n := range rowsize {
		offsets[i+1] = offsets[i] + n
	}
	return offsets
}

// RowOf answers "in which row is this observation located?". The index must
// be within [0, sum(rowsize)).
func RowOf(index int, rowsize []int) (int, error) {
	rows, err := RowsOf([]int{index}, rowsize)
	if err != nil {
		return 0, err
	}
	return rows[0], nil
}

// RowsOf maps flat observation indices to row indices via a right-biased
// search over the boundary offsets. Every index must be within
// [0, sum(rowsize)).
func RowsOf(indices []int, rowsize []int) ([]int, error) {
	offsets := Offsets(rowsize)
	total := offsets[len(offsets)-1]

	rows := make([]int, len(indices))
	for k, idx := range indices {
		if idx < 0 || idx >= total {
			return nil, fmt.Errorf("%w: observation index %d not in [0, %d)", ErrIndexOutOfBounds, idx, total)
		}
		// Rightmost offset not exceeding idx.
		rows[k] = sort.Search(len(offsets), func(i int) bool { return offsets[i] > idx }) - 1
	}
	return rows, nil
}

// sumInts is the total observation count of a row-size vector.
func sumInts(rowsize []int) int {
	total := 0
	for _, n := range rowsize {
		total += n
	}
	return total
}
