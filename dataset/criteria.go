package dataset

import (
	"fmt"
	"time"

	"github.com/driftlab/ragged"
)

// MaskFunc is a caller-supplied predicate evaluated against one or more
// variables. It returns one boolean per element of its inputs.
type MaskFunc func(vars ...Column) ([]bool, error)

type criterionKind int

const (
	kindRange criterionKind = iota
	kindSet
	kindScalar
	kindPredicate
)

// Criterion is a declarative filter over one named variable (or, for
// predicates only, a tuple of variables). It has exactly four variants,
// built with Between, OneOf, EqualTo, and Where. A criterion may also name a
// dimension, which behaves as a 0..n-1 index variable on that dimension.
type Criterion struct {
	vars []string
	kind criterionKind

	lo, hi any
	set    []any
	value  any
	fn     MaskFunc
}

// Between matches values within the inclusive range [lo, hi].
func Between(varName string, lo, hi any) Criterion {
	return Criterion{vars: []string{varName}, kind: kindRange, lo: lo, hi: hi}
}

// OneOf matches values belonging to an explicit set.
func OneOf(varName string, values ...any) Criterion {
	return Criterion{vars: []string{varName}, kind: kindSet, set: values}
}

// EqualTo matches values equal to a single scalar.
func EqualTo(varName string, value any) Criterion {
	return Criterion{vars: []string{varName}, kind: kindScalar, value: value}
}

// Where matches positions for which the predicate returns true. It is the
// only variant that may name several variables; they must share a dimension.
// Predicates over observation-dimension variables are evaluated row by row
// through the apply engine.
func Where(fn MaskFunc, varNames ...string) Criterion {
	return Criterion{vars: varNames, kind: kindPredicate, fn: fn}
}

// Vars returns the variable names the criterion applies to.
func (c Criterion) Vars() []string {
	names := make([]string, len(c.vars))
	copy(names, c.vars)
	return names
}

// mask evaluates the criterion against its resolved columns. rowsize drives
// the row-wise dispatch of observation-dimension predicates, and ex is the
// executor used for it.
func (c Criterion) mask(cols []Column, rowsize []int, ex ragged.Executor) ([]bool, error) {
	switch c.kind {
	case kindRange:
		return evalRange(cols[0], c.lo, c.hi)
	case kindSet:
		return evalSet(cols[0], c.set)
	case kindScalar:
		return evalEqual(cols[0], c.value)
	case kindPredicate:
		return c.evalPredicate(cols, rowsize, ex)
	default:
		return nil, fmt.Errorf("%w: unknown criterion kind %d", ErrCriterionType, c.kind)
	}
}

// evalPredicate calls the predicate directly for row-dimension data, and
// dispatches it once per row through the apply engine for
// observation-dimension data.
func (c Criterion) evalPredicate(cols []Column, rowsize []int, ex ragged.Executor) ([]bool, error) {
	n := cols[0].Len()

	var mask []bool
	var err error
	if n == len(rowsize) {
		mask, err = c.fn(cols...)
	} else {
		offsets := ragged.Offsets(rowsize)
		rowMasks := make([][]bool, len(rowsize))
		err = ragged.ApplyIndexed(ex, len(rowsize), func(i int) error {
			sub := make([]Column, len(cols))
			for k, col := range cols {
				sub[k] = col.Slice(offsets[i], offsets[i+1])
			}
			m, ferr := c.fn(sub...)
			if ferr != nil {
				return ferr
			}
			rowMasks[i] = m
			return nil
		})
		if err == nil {
			for _, m := range rowMasks {
				mask = append(mask, m...)
			}
		}
	}
	if err != nil {
		return nil, err
	}

	if len(mask) != n {
		return nil, fmt.Errorf("%w: predicate returned %d values for a variable of length %d", ErrMaskLength, len(mask), n)
	}
	return mask, nil
}

func evalRange(col Column, lo, hi any) ([]bool, error) {
	mask := make([]bool, col.Len())
	switch c := col.(type) {
	case Float64s:
		lov, ok1 := toFloat64(lo)
		hiv, ok2 := toFloat64(hi)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: range bounds (%v, %v) for a float column", ErrCriterionType, lo, hi)
		}
		for i, v := range c {
			mask[i] = v >= lov && v <= hiv
		}
	case Int64s:
		lov, ok1 := toFloat64(lo)
		hiv, ok2 := toFloat64(hi)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: range bounds (%v, %v) for an integer column", ErrCriterionType, lo, hi)
		}
		for i, v := range c {
			mask[i] = float64(v) >= lov && float64(v) <= hiv
		}
	case Times:
		lov, ok1 := toTime(lo)
		hiv, ok2 := toTime(hi)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: range bounds (%v, %v) for a time column", ErrCriterionType, lo, hi)
		}
		for i, v := range c {
			mask[i] = !v.Before(lov) && !v.After(hiv)
		}
	case Strings:
		lov, ok1 := toString(lo)
		hiv, ok2 := toString(hi)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: range bounds (%v, %v) for a string column", ErrCriterionType, lo, hi)
		}
		for i, v := range c {
			mask[i] = v >= lov && v <= hiv
		}
	default:
		return nil, fmt.Errorf("%w: range criterion unsupported for %T", ErrCriterionType, col)
	}
	return mask, nil
}

func evalSet(col Column, values []any) ([]bool, error) {
	mask := make([]bool, col.Len())
	switch c := col.(type) {
	case Float64s:
		set := make(map[float64]struct{}, len(values))
		for _, v := range values {
			f, ok := toFloat64(v)
			if !ok {
				return nil, fmt.Errorf("%w: set member %v for a float column", ErrCriterionType, v)
			}
			set[f] = struct{}{}
		}
		for i, v := range c {
			_, mask[i] = set[v]
		}
	case Int64s:
		set := make(map[int64]struct{}, len(values))
		for _, v := range values {
			n, ok := toInt64(v)
			if !ok {
				return nil, fmt.Errorf("%w: set member %v for an integer column", ErrCriterionType, v)
			}
			set[n] = struct{}{}
		}
		for i, v := range c {
			_, mask[i] = set[v]
		}
	case Strings:
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			s, ok := toString(v)
			if !ok {
				return nil, fmt.Errorf("%w: set member %v for a string column", ErrCriterionType, v)
			}
			set[s] = struct{}{}
		}
		for i, v := range c {
			_, mask[i] = set[v]
		}
	case Times:
		times := make([]time.Time, 0, len(values))
		for _, v := range values {
			t, ok := toTime(v)
			if !ok {
				return nil, fmt.Errorf("%w: set member %v for a time column", ErrCriterionType, v)
			}
			times = append(times, t)
		}
		for i, v := range c {
			for _, t := range times {
				if v.Equal(t) {
					mask[i] = true
					break
				}
			}
		}
	default:
		return nil, fmt.Errorf("%w: set criterion unsupported for %T", ErrCriterionType, col)
	}
	return mask, nil
}

func evalEqual(col Column, value any) ([]bool, error) {
	mask := make([]bool, col.Len())
	switch c := col.(type) {
	case Float64s:
		want, ok := toFloat64(value)
		if !ok {
			return nil, fmt.Errorf("%w: scalar %v for a float column", ErrCriterionType, value)
		}
		for i, v := range c {
			mask[i] = v == want
		}
	case Int64s:
		want, ok := toInt64(value)
		if !ok {
			return nil, fmt.Errorf("%w: scalar %v for an integer column", ErrCriterionType, value)
		}
		for i, v := range c {
			mask[i] = v == want
		}
	case Bools:
		want, ok := toBool(value)
		if !ok {
			return nil, fmt.Errorf("%w: scalar %v for a bool column", ErrCriterionType, value)
		}
		for i, v := range c {
			mask[i] = v == want
		}
	case Strings:
		want, ok := toString(value)
		if !ok {
			return nil, fmt.Errorf("%w: scalar %v for a string column", ErrCriterionType, value)
		}
		for i, v := range c {
			mask[i] = v == want
		}
	case Times:
		want, ok := toTime(value)
		if !ok {
			return nil, fmt.Errorf("%w: scalar %v for a time column", ErrCriterionType, value)
		}
		for i, v := range c {
			mask[i] = v.Equal(want)
		}
	default:
		return nil, fmt.Errorf("%w: scalar criterion unsupported for %T", ErrCriterionType, col)
	}
	return mask, nil
}
