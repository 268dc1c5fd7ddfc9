package dataset

import (
	"fmt"

	"github.com/driftlab/ragged"
	"github.com/driftlab/ragged/internal/logging"
)

// SubsetOptions contains the optional parameters of Subset.
type SubsetOptions struct {
	// FullRows widens the result to all observations of any surviving row,
	// disabling partial-row filtering for rows that passed.
	FullRows bool

	// Executor runs row-wise predicate dispatch. Nil selects the shared
	// default pool.
	Executor ragged.Executor

	// Logger receives the no-match warning. Nil selects the global logger.
	Logger *logging.Logger
}

// Subset filters the dataset by one or more criteria and materializes the
// result with a recomputed row-size variable. Criteria over row-dimension
// variables and observation-dimension variables are folded into one boolean
// mask per dimension; the two masks are then reconciled in three phases, in
// this exact order:
//
//  1. every observation of a rejected row is rejected;
//  2. a row left with zero surviving observations is rejected, even if it
//     passed every row-level criterion;
//  3. with FullRows, the observation mask is widened back to all
//     observations of the surviving rows.
//
// When nothing matches, Subset logs a warning and returns the empty dataset
// rather than an error. The input dataset is never mutated.
func (ds *Dataset) Subset(criteria []Criterion, opts SubsetOptions) (*Dataset, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Global()
	}

	rowsize, err := ds.Rowsize()
	if err != nil {
		return nil, err
	}

	obsCount := ds.ObsCount()
	if obsCount < 0 {
		// No observation-dimension variable yet; the row sizes still define
		// the dimension's cardinality.
		obsCount = sumInts(rowsize)
	}
	maskRow := allTrue(ds.RowCount())
	maskObs := allTrue(obsCount)

	for _, c := range criteria {
		cols, dim, err := ds.resolveVars(c)
		if err != nil {
			return nil, err
		}

		m, err := c.mask(cols, rowsize, opts.Executor)
		if err != nil {
			return nil, err
		}

		switch dim {
		case ds.config.RowDim:
			andMask(maskRow, m)
		case ds.config.ObsDim:
			andMask(maskObs, m)
		}
	}

	offsets := ragged.Offsets(rowsize)

	// Phase 1: row exclusion propagates to observations.
	for i, keep := range maskRow {
		if !keep {
			for j := offsets[i]; j < offsets[i+1]; j++ {
				maskObs[j] = false
			}
		}
	}

	// Phase 2: a row with no surviving observation drops.
	for i, keep := range maskRow {
		if !keep {
			continue
		}
		alive := false
		for j := offsets[i]; j < offsets[i+1]; j++ {
			if maskObs[j] {
				alive = true
				break
			}
		}
		maskRow[i] = alive
	}

	// Phase 3: optionally widen back to complete rows.
	if opts.FullRows {
		for i, keep := range maskRow {
			if keep {
				for j := offsets[i]; j < offsets[i+1]; j++ {
					maskObs[j] = true
				}
			}
		}
	}

	if !anyTrue(maskRow) {
		logger.Warn("No data matches the criteria; returning an empty dataset")
		return Empty(), nil
	}

	sub, err := ds.Isel(ds.config.RowDim, maskRow)
	if err != nil {
		return nil, err
	}
	if sub.DimSize(ds.config.ObsDim) >= 0 {
		sub, err = sub.Isel(ds.config.ObsDim, maskObs)
		if err != nil {
			return nil, err
		}
	}

	// Recompute the row-size variable: surviving observation counts per
	// surviving row, in original row order.
	var newSizes Int64s
	for i, keep := range maskRow {
		if !keep {
			continue
		}
		n := int64(0)
		for j := offsets[i]; j < offsets[i+1]; j++ {
			if maskObs[j] {
				n++
			}
		}
		newSizes = append(newSizes, n)
	}
	if err := sub.SetVar(ds.config.RowsizeVar, newSizes); err != nil {
		return nil, err
	}
	return sub, nil
}

// resolveVars resolves a criterion's variable names against the dataset's
// variables and dimensions, returning the columns and the dimension they
// live on. A name matching no variable may match a dimension, which acts as
// a 0..n-1 index variable. Multi-variable criteria must be predicates and
// all their variables must live on the same dimension.
func (ds *Dataset) resolveVars(c Criterion) ([]Column, string, error) {
	if len(c.vars) == 0 {
		return nil, "", fmt.Errorf("%w: criterion names no variable", ErrVarNotFound)
	}
	if len(c.vars) > 1 && c.kind != kindPredicate {
		return nil, "", fmt.Errorf("%w: criterion over %d variables must be a predicate", ErrCriterionType, len(c.vars))
	}

	cols := make([]Column, len(c.vars))
	dims := make([]string, len(c.vars))
	for k, name := range c.vars {
		if v, ok := ds.vars[name]; ok {
			cols[k] = v.Data
			dims[k] = v.Dim
			continue
		}
		if size, ok := ds.dims[name]; ok {
			index := make(Int64s, size)
			for i := range index {
				index[i] = int64(i)
			}
			cols[k] = index
			dims[k] = name
			continue
		}
		return nil, "", fmt.Errorf("%w: %q", ErrVarNotFound, name)
	}

	for _, dim := range dims[1:] {
		if dim != dims[0] {
			return nil, "", fmt.Errorf("%w: predicate variables must share the same dimension, got %q and %q", ErrCriterionType, dims[0], dim)
		}
	}
	return cols, dims[0], nil
}

func sumInts(rowsize []int) int {
	total := 0
	for _, n := range rowsize {
		total += n
	}
	return total
}

func allTrue(n int) []bool {
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	return mask
}

func anyTrue(mask []bool) bool {
	for _, v := range mask {
		if v {
			return true
		}
	}
	return false
}

func andMask(dst, src []bool) {
	for i := range dst {
		dst[i] = dst[i] && src[i]
	}
}
