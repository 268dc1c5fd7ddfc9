// Package dataset provides a labeled container for ragged arrays: two named
// dimensions (rows and observations), typed variables living on one of them,
// and multi-criterion subsetting that keeps the row-size variable consistent
// with the observation dimension.
package dataset

import "time"

// Column is a typed sequence of values backing one variable. Implementations
// are plain in-memory slices; Slice returns a view, Filter a copy.
type Column interface {
	// Len returns the number of values.
	Len() int
	// Slice returns a view of the half-open range [i, j).
	Slice(i, j int) Column
	// Filter returns a new column keeping the values where mask is true.
	// The mask length must equal Len.
	Filter(mask []bool) Column
	// Value returns element i boxed as an interface value.
	Value(i int) any
}

// Float64s is a float64-valued column.
type Float64s []float64

// Int64s is an int64-valued column, the type of row-size and identifier
// variables.
type Int64s []int64

// Bools is a bool-valued column.
type Bools []bool

// Strings is a string-valued column.
type Strings []string

// Times is a time-valued column.
type Times []time.Time

func filterSlice[E any](s []E, mask []bool) []E {
	out := make([]E, 0, len(s))
	for i, v := range s {
		if mask[i] {
			out = append(out, v)
		}
	}
	return out
}

// Len implements Column.
func (c Float64s) Len() int { return len(c) }

// Slice implements Column.
func (c Float64s) Slice(i, j int) Column { return c[i:j] }

// Filter implements Column.
func (c Float64s) Filter(mask []bool) Column { return Float64s(filterSlice(c, mask)) }

// Value implements Column.
func (c Float64s) Value(i int) any { return c[i] }

// Len implements Column.
func (c Int64s) Len() int { return len(c) }

// Slice implements Column.
func (c Int64s) Slice(i, j int) Column { return c[i:j] }

// Filter implements Column.
func (c Int64s) Filter(mask []bool) Column { return Int64s(filterSlice(c, mask)) }

// Value implements Column.
func (c Int64s) Value(i int) any { return c[i] }

// Len implements Column.
func (c Bools) Len() int { return len(c) }

// Slice implements Column.
func (c Bools) Slice(i, j int) Column { return c[i:j] }

// Filter implements Column.
func (c Bools) Filter(mask []bool) Column { return Bools(filterSlice(c, mask)) }

// Value implements Column.
func (c Bools) Value(i int) any { return c[i] }

// Len implements Column.
func (c Strings) Len() int { return len(c) }

// Slice implements Column.
func (c Strings) Slice(i, j int) Column { return c[i:j] }

// Filter implements Column.
func (c Strings) Filter(mask []bool) Column { return Strings(filterSlice(c, mask)) }

// Value implements Column.
func (c Strings) Value(i int) any { return c[i] }

// Len implements Column.
func (c Times) Len() int { return len(c) }

// Slice implements Column.
func (c Times) Slice(i, j int) Column { return c[i:j] }

// Filter implements Column.
func (c Times) Filter(mask []bool) Column { return Times(filterSlice(c, mask)) }

// Value implements Column.
func (c Times) Value(i int) any { return c[i] }
