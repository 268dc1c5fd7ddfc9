package dataset

import (
	"fmt"

	"github.com/driftlab/ragged"
)

// Config names the dimensions and distinguished variables of a ragged
// dataset.
type Config struct {
	// RowDim is the name of the row dimension.
	RowDim string
	// ObsDim is the name of the observation dimension.
	ObsDim string
	// IDVar is the name of the row identifier variable, living on RowDim.
	IDVar string
	// RowsizeVar is the name of the row-size variable, living on RowDim.
	RowsizeVar string
}

// DefaultConfig returns the conventional names for drifter trajectory
// datasets.
func DefaultConfig() Config {
	return Config{
		RowDim:     "rows",
		ObsDim:     "obs",
		IDVar:      "id",
		RowsizeVar: "rowsize",
	}
}

// Variable is a named 1-D array living on one dimension of a dataset.
type Variable struct {
	Dim  string
	Data Column
}

// Dataset is a labeled container of ragged data: a row dimension whose
// cardinality is the row count, an observation dimension whose cardinality
// is the total observation count, and named variables each living on one of
// the two. The row-size variable over the row dimension partitions the
// observation dimension into rows; its sum must equal the observation
// cardinality at all times.
type Dataset struct {
	config Config

	dims  map[string]int
	vars  map[string]Variable
	order []string // insertion order of variables
}

// New creates an empty dataset with the given dimension and variable names.
// Dimension cardinalities are fixed by the first variable added on each
// dimension.
func New(cfg Config) *Dataset {
	return &Dataset{
		config: cfg,
		dims:   make(map[string]int),
		vars:   make(map[string]Variable),
	}
}

// Empty returns the zero dataset: no dimensions, no variables. It is the
// "no match" result of Subset.
func Empty() *Dataset {
	return &Dataset{
		dims: make(map[string]int),
		vars: make(map[string]Variable),
	}
}

// IsEmpty reports whether the dataset has no variables.
func (ds *Dataset) IsEmpty() bool {
	return len(ds.vars) == 0
}

// Config returns the dimension and distinguished variable names.
func (ds *Dataset) Config() Config {
	return ds.config
}

// AddVar adds a variable on the named dimension. The first variable on a
// dimension fixes its cardinality; later variables must match it.
func (ds *Dataset) AddVar(name, dim string, data Column) error {
	if dim != ds.config.RowDim && dim != ds.config.ObsDim {
		return fmt.Errorf("%w: dimension %q is neither %q nor %q", ErrDimMismatch, dim, ds.config.RowDim, ds.config.ObsDim)
	}
	if size, ok := ds.dims[dim]; ok {
		if data.Len() != size {
			return fmt.Errorf("%w: variable %q has length %d, dimension %q has size %d", ErrDimMismatch, name, data.Len(), dim, size)
		}
	} else {
		ds.dims[dim] = data.Len()
	}

	if _, exists := ds.vars[name]; !exists {
		ds.order = append(ds.order, name)
	}
	ds.vars[name] = Variable{Dim: dim, Data: data}
	return nil
}

// SetVar replaces the values of an existing variable. The replacement must
// match the variable's dimension cardinality.
func (ds *Dataset) SetVar(name string, data Column) error {
	v, ok := ds.vars[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrVarNotFound, name)
	}
	if data.Len() != ds.dims[v.Dim] {
		return fmt.Errorf("%w: replacement for %q has length %d, dimension %q has size %d", ErrDimMismatch, name, data.Len(), v.Dim, ds.dims[v.Dim])
	}
	ds.vars[name] = Variable{Dim: v.Dim, Data: data}
	return nil
}

// Var returns a variable by name.
func (ds *Dataset) Var(name string) (Variable, bool) {
	v, ok := ds.vars[name]
	return v, ok
}

// VarNames returns the variable names in insertion order.
func (ds *Dataset) VarNames() []string {
	names := make([]string, len(ds.order))
	copy(names, ds.order)
	return names
}

// DimSize returns the cardinality of a dimension, or -1 if unknown.
func (ds *Dataset) DimSize(dim string) int {
	if size, ok := ds.dims[dim]; ok {
		return size
	}
	return -1
}

// RowCount returns the cardinality of the row dimension.
func (ds *Dataset) RowCount() int {
	return ds.DimSize(ds.config.RowDim)
}

// ObsCount returns the cardinality of the observation dimension.
func (ds *Dataset) ObsCount() int {
	return ds.DimSize(ds.config.ObsDim)
}

// Rowsize returns the row-size variable as a plain int slice.
func (ds *Dataset) Rowsize() ([]int, error) {
	v, ok := ds.vars[ds.config.RowsizeVar]
	if !ok {
		return nil, fmt.Errorf("%w: row-size variable %q", ErrVarNotFound, ds.config.RowsizeVar)
	}
	sizes, ok := v.Data.(Int64s)
	if !ok {
		return nil, fmt.Errorf("%w: row-size variable %q must be an Int64s column", ErrCriterionType, ds.config.RowsizeVar)
	}

	rowsize := make([]int, len(sizes))
	for i, n := range sizes {
		rowsize[i] = int(n)
	}
	return rowsize, nil
}

// Validate checks the ragged invariants: the identifier and row-size
// variables exist on the row dimension, every variable matches its
// dimension's cardinality, and the row sizes sum to the observation
// cardinality.
func (ds *Dataset) Validate() error {
	for _, name := range []string{ds.config.IDVar, ds.config.RowsizeVar} {
		v, ok := ds.vars[name]
		if !ok {
			return fmt.Errorf("%w: required variable %q", ErrVarNotFound, name)
		}
		if v.Dim != ds.config.RowDim {
			return fmt.Errorf("%w: variable %q must live on dimension %q", ErrDimMismatch, name, ds.config.RowDim)
		}
	}

	for name, v := range ds.vars {
		if v.Data.Len() != ds.dims[v.Dim] {
			return fmt.Errorf("%w: variable %q has length %d, dimension %q has size %d", ErrDimMismatch, name, v.Data.Len(), v.Dim, ds.dims[v.Dim])
		}
	}

	rowsize, err := ds.Rowsize()
	if err != nil {
		return err
	}
	offsets := ragged.Offsets(rowsize)
	if obs, ok := ds.dims[ds.config.ObsDim]; ok && offsets[len(offsets)-1] != obs {
		return fmt.Errorf("%w: rowsize sums to %d, dimension %q has size %d", ragged.ErrRowsizeMismatch, offsets[len(offsets)-1], ds.config.ObsDim, obs)
	}
	return nil
}

// Isel selects positions along one dimension with a boolean mask, returning
// a new dataset. Variables on the other dimension are carried over
// unchanged; the input dataset is never mutated.
func (ds *Dataset) Isel(dim string, mask []bool) (*Dataset, error) {
	size, ok := ds.dims[dim]
	if !ok {
		return nil, fmt.Errorf("%w: dimension %q", ErrVarNotFound, dim)
	}
	if len(mask) != size {
		return nil, fmt.Errorf("%w: mask has length %d, dimension %q has size %d", ErrDimMismatch, len(mask), dim, size)
	}

	kept := 0
	for _, ok := range mask {
		if ok {
			kept++
		}
	}

	out := New(ds.config)
	out.dims[dim] = kept
	for name, dsize := range ds.dims {
		if name != dim {
			out.dims[name] = dsize
		}
	}
	for _, name := range ds.order {
		v := ds.vars[name]
		data := v.Data
		if v.Dim == dim {
			data = data.Filter(mask)
		}
		out.vars[name] = Variable{Dim: v.Dim, Data: data}
		out.order = append(out.order, name)
	}
	return out, nil
}
