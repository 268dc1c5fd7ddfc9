package ragged

import (
	"fmt"
	"time"
)

// Segment divides x into contiguous segments based on a tolerance value and
// returns the size of each segment; the sizes sum to len(x). A non-negative
// tolerance starts a new segment wherever x[i+1]-x[i] > tolerance; a negative
// tolerance wherever x[i+1]-x[i] < tolerance, which detects decreasing runs.
//
// A non-nil rowsize divides x into its original rows first and segments each
// row independently, so no segment crosses a row boundary; the per-row
// segment sizes are concatenated in row order. To segment on gaps in both
// directions, call Segment twice and feed the first result as the second
// call's rowsize:
//
//	down, _ := Segment(x, -tol, nil)
//	sizes, _ := Segment(x, tol, down)
func Segment[T Real](x []T, tolerance T, rowsize []int) ([]int, error) {
	return segmented(len(x), rowsize, func(lo, hi int) []int {
		return segmentRun(hi-lo, func(i int) bool {
			diff := x[lo+i+1] - x[lo+i]
			if tolerance >= 0 {
				return diff > tolerance
			}
			return diff < tolerance
		})
	})
}

// SegmentTimes is the temporal variant of Segment: the input is a time
// sequence and the tolerance a duration. The sign of the tolerance selects
// the comparison direction exactly as in Segment.
func SegmentTimes(x []time.Time, tolerance time.Duration, rowsize []int) ([]int, error) {
	return segmented(len(x), rowsize, func(lo, hi int) []int {
		return segmentRun(hi-lo, func(i int) bool {
			diff := x[lo+i+1].Sub(x[lo+i])
			if tolerance >= 0 {
				return diff > tolerance
			}
			return diff < tolerance
		})
	})
}

// segmented applies a per-range segmentation either to the whole sequence or
// independently within each given row.
func segmented(n int, rowsize []int, one func(lo, hi int) []int) ([]int, error) {
	if rowsize == nil {
		return one(0, n), nil
	}
	if total := sumInts(rowsize); total != n {
		return nil, fmt.Errorf("%w: rowsize sums to %d, array has length %d", ErrRowsizeMismatch, total, n)
	}

	var sizes []int
	start := 0
	for _, r := range rowsize {
		sizes = append(sizes, one(start, start+r)...)
		start += r
	}
	return sizes, nil
}

// segmentRun walks the n-1 consecutive differences of an n-element range and
// splits it after every position where breakAfter holds. A zero-length range
// yields a single empty segment.
func segmentRun(n int, breakAfter func(i int) bool) []int {
	if n == 0 {
		return []int{0}
	}

	var sizes []int
	run := 1
	for i := 0; i+1 < n; i++ {
		if breakAfter(i) {
			sizes = append(sizes, run)
			run = 1
		} else {
			run++
		}
	}
	return append(sizes, run)
}
