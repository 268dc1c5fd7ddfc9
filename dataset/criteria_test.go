package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftlab/ragged"
)

func TestCriterion_Vars(t *testing.T) {
	assert.Equal(t, []string{"lon"}, Between("lon", 0, 10).Vars())
	assert.Equal(t, []string{"id"}, OneOf("id", 1, 2).Vars())
	assert.Equal(t, []string{"lon", "lat"}, Where(nil, "lon", "lat").Vars())
}

func TestEvalRange(t *testing.T) {
	tests := []struct {
		name   string
		col    Column
		lo, hi any
		want   []bool
	}{
		{"floats", Float64s{-1, 0, 1, 2}, 0.0, 1.0, []bool{false, true, true, false}},
		{"floats with int bounds", Float64s{-1, 0, 1, 2}, 0, 1, []bool{false, true, true, false}},
		{"ints", Int64s{1, 5, 10}, 2, 10, []bool{false, true, true}},
		{"strings", Strings{"a", "m", "z"}, "b", "x", []bool{false, true, false}},
		{"inclusive bounds", Float64s{1, 2, 3}, 1.0, 3.0, []bool{true, true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask, err := evalRange(tt.col, tt.lo, tt.hi)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mask)
		})
	}
}

func TestEvalRange_Times(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	col := Times{base, base.Add(time.Hour), base.Add(2 * time.Hour)}

	mask, err := evalRange(col, base.Add(30*time.Minute), base.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, false}, mask)
}

func TestEvalRange_Errors(t *testing.T) {
	_, err := evalRange(Bools{true}, 0, 1)
	assert.ErrorIs(t, err, ErrCriterionType)

	_, err = evalRange(Float64s{1}, "a", "b")
	assert.ErrorIs(t, err, ErrCriterionType)
}

func TestEvalSet(t *testing.T) {
	tests := []struct {
		name   string
		col    Column
		values []any
		want   []bool
	}{
		{"ints", Int64s{1, 2, 3, 4}, []any{2, 4}, []bool{false, true, false, true}},
		{"floats", Float64s{1.5, 2.5}, []any{2.5}, []bool{false, true}},
		{"strings", Strings{"a", "b", "c"}, []any{"a", "c"}, []bool{true, false, true}},
		{"empty set matches nothing", Int64s{1, 2}, nil, []bool{false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask, err := evalSet(tt.col, tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mask)
		})
	}
}

func TestEvalEqual(t *testing.T) {
	tests := []struct {
		name  string
		col   Column
		value any
		want  []bool
	}{
		{"ints", Int64s{1, 2, 1}, 1, []bool{true, false, true}},
		{"int value against floats", Float64s{1, 2}, 2, []bool{false, true}},
		{"bools", Bools{true, false}, true, []bool{true, false}},
		{"strings", Strings{"x", "y"}, "y", []bool{false, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mask, err := evalEqual(tt.col, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mask)
		})
	}
}

func TestCriterion_Predicate_RowDim(t *testing.T) {
	c := Where(func(vars ...Column) ([]bool, error) {
		col := vars[0].(Float64s)
		mask := make([]bool, len(col))
		for i, v := range col {
			mask[i] = v > 0
		}
		return mask, nil
	}, "deploy_lon")

	rowsize := []int{3, 1, 2}
	mask, err := c.mask([]Column{Float64s{-55, 12, 41}}, rowsize, ragged.SyncExecutor{})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, true, true}, mask)
}

func TestCriterion_Predicate_ObsDimDispatchesPerRow(t *testing.T) {
	// The column is longer than the row count, so the predicate runs once per
	// row and sees only that row's observations.
	var lengths []int
	c := Where(func(vars ...Column) ([]bool, error) {
		lengths = append(lengths, vars[0].Len())
		mask := make([]bool, vars[0].Len())
		for i := range mask {
			mask[i] = true
		}
		return mask, nil
	}, "lon")

	rowsize := []int{3, 1, 2}
	mask, err := c.mask([]Column{Float64s{1, 2, 3, 4, 5, 6}}, rowsize, ragged.SyncExecutor{})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, true, true, true, true}, mask)
	assert.ElementsMatch(t, []int{3, 1, 2}, lengths)
}

func TestCriterion_Predicate_MaskLengthChecked(t *testing.T) {
	c := Where(func(vars ...Column) ([]bool, error) {
		return []bool{true}, nil
	}, "deploy_lon")

	_, err := c.mask([]Column{Float64s{1, 2, 3}}, []int{1, 1, 1}, ragged.SyncExecutor{})
	assert.ErrorIs(t, err, ErrMaskLength)
}
