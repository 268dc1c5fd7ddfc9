package dataset

import "errors"

// Sentinel errors of the dataset layer.
var (
	// ErrVarNotFound reports a criterion or accessor naming a variable or
	// dimension absent from the dataset.
	ErrVarNotFound = errors.New("unknown variable")

	// ErrCriterionType reports a criterion whose shape does not fit its
	// target: a multi-variable key without a predicate, predicate variables
	// on different dimensions, or a comparison unsupported by the column
	// type.
	ErrCriterionType = errors.New("criterion type mismatch")

	// ErrMaskLength reports a predicate returning a mask whose length
	// disagrees with the variable it filters.
	ErrMaskLength = errors.New("mask length mismatch")

	// ErrDimMismatch reports a variable or mask whose length disagrees with
	// the cardinality of its dimension.
	ErrDimMismatch = errors.New("dimension size mismatch")
)
