package ragged

import "fmt"

// Real is the element constraint of operations that need ordering or a fill
// value: the signed integer and floating point kinds.
type Real interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// Unpack splits a flat ragged array into per-row slices at its boundary
// offsets. The returned slices are views into flat, not copies. With no row
// selector all rows are returned; otherwise only the named rows, order
// preserved and duplicates allowed.
func Unpack[T any](flat []T, rowsize []int, rows ...int) ([][]T, error) {
	offsets := Offsets(rowsize)
	if total := offsets[len(offsets)-1]; total != len(flat) {
		return nil, fmt.Errorf("%w: rowsize sums to %d, array has length %d", ErrRowsizeMismatch, total, len(flat))
	}

	if rows == nil {
		rows = make([]int, len(rowsize))
		for i := range rows {
			rows[i] = i
		}
	}

	unpacked := make([][]T, len(rows))
	for k, r := range rows {
		if r < 0 || r >= len(rowsize) {
			return nil, fmt.Errorf("%w: row %d not in [0, %d)", ErrIndexOutOfBounds, r, len(rowsize))
		}
		unpacked[k] = flat[offsets[r]:offsets[r+1]]
	}
	return unpacked, nil
}

// ToRegular converts a ragged array into a regular matrix of shape
// (len(rowsize), max(rowsize)). Each row is left-aligned and padded to the
// right with fill.
func ToRegular[T Real](flat []T, rowsize []int, fill T) ([][]T, error) {
	unpacked, err := Unpack(flat, rowsize)
	if err != nil {
		return nil, err
	}

	width := 0
	for _, n := range rowsize {
		if n > width {
			width = n
		}
	}

	regular := make([][]T, len(rowsize))
	for i, row := range unpacked {
		padded := make([]T, width)
		for j := range padded {
			padded[j] = fill
		}
		copy(padded, row)
		regular[i] = padded
	}
	return regular, nil
}

// FromRegular converts a regular matrix back into a ragged array, excluding
// elements equal to fill. The equality test is NaN-aware, so a NaN fill
// matches NaN elements. The conversion is lossy when genuine data equals the
// fill value; callers must choose a fill outside the legitimate data range.
func FromRegular[T Real](regular [][]T, fill T) ([]T, []int) {
	var flat []T
	rowsize := make([]int, len(regular))
	for i, row := range regular {
		n := 0
		for _, v := range row {
			if !sameValue(v, fill) {
				flat = append(flat, v)
				n++
			}
		}
		rowsize[i] = n
	}
	return flat, rowsize
}

// sameValue is equality that treats NaN as equal to NaN. Only NaN compares
// unequal to itself, so integer instantiations reduce to plain equality.
func sameValue[T Real](a, b T) bool {
	return a == b || (a != a && b != b)
}
