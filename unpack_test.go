package ragged

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestUnpack(t *testing.T) {
	flat := []float64{1, 2, 3, 4, 5, 6}
	rowsize := []int{2, 1, 3}

	rows, err := Unpack(flat, rowsize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]float64{{1, 2}, {3}, {4, 5, 6}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Unpack = %v, want %v", rows, want)
	}
}

func TestUnpack_RowSelection(t *testing.T) {
	flat := []int{1, 2, 3, 4, 5, 6}
	rowsize := []int{2, 1, 3}

	rows, err := Unpack(flat, rowsize, 2, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]int{{4, 5, 6}, {1, 2}, {1, 2}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Unpack = %v, want %v", rows, want)
	}
}

func TestUnpack_ReturnsViews(t *testing.T) {
	flat := []int{1, 2, 3}
	rows, err := Unpack(flat, []int{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows[1][0] = 42
	if flat[1] != 42 {
		t.Errorf("expected mutation through the view, flat = %v", flat)
	}
}

func TestUnpack_Errors(t *testing.T) {
	tests := []struct {
		name    string
		rowsize []int
		rows    []int
		want    error
	}{
		{"rowsize too small", []int{1, 1}, nil, ErrRowsizeMismatch},
		{"rowsize too large", []int{2, 2}, nil, ErrRowsizeMismatch},
		{"negative row", []int{1, 2}, []int{-1}, ErrIndexOutOfBounds},
		{"row past the end", []int{1, 2}, []int{2}, ErrIndexOutOfBounds},
	}

	flat := []int{1, 2, 3}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unpack(flat, tt.rowsize, tt.rows...); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestToRegular(t *testing.T) {
	flat := []float64{1, 2, 3, 4, 5, 6}
	rowsize := []int{2, 1, 3}

	regular, err := ToRegular(flat, rowsize, math.NaN())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(regular) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(regular))
	}
	for i, row := range regular {
		if len(row) != 3 {
			t.Errorf("row %d: expected width 3, got %d", i, len(row))
		}
	}
	if regular[0][0] != 1 || regular[0][1] != 2 || !math.IsNaN(regular[0][2]) {
		t.Errorf("row 0 = %v, want [1 2 NaN]", regular[0])
	}
	if regular[1][0] != 3 || !math.IsNaN(regular[1][1]) || !math.IsNaN(regular[1][2]) {
		t.Errorf("row 1 = %v, want [3 NaN NaN]", regular[1])
	}
}

func TestToRegular_IntegerFill(t *testing.T) {
	regular, err := ToRegular([]int{1, 2, 3}, []int{1, 2}, -1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]int{{1, -1}, {2, 3}}
	if !reflect.DeepEqual(regular, want) {
		t.Errorf("ToRegular = %v, want %v", regular, want)
	}
}

func TestFromRegular(t *testing.T) {
	nan := math.NaN()
	regular := [][]float64{{1, 2, nan}, {3, nan, nan}, {4, 5, 6}}

	flat, rowsize := FromRegular(regular, nan)
	if !reflect.DeepEqual(flat, []float64{1, 2, 3, 4, 5, 6}) {
		t.Errorf("flat = %v, want [1 2 3 4 5 6]", flat)
	}
	if !reflect.DeepEqual(rowsize, []int{2, 1, 3}) {
		t.Errorf("rowsize = %v, want [2 1 3]", rowsize)
	}
}

func TestFromRegular_FillInsideRow(t *testing.T) {
	// Fill values are removed wherever they occur, not only at the tail.
	flat, rowsize := FromRegular([][]int{{1, -1, 2}, {-1, -1, -1}}, -1)
	if !reflect.DeepEqual(flat, []int{1, 2}) {
		t.Errorf("flat = %v, want [1 2]", flat)
	}
	if !reflect.DeepEqual(rowsize, []int{2, 0}) {
		t.Errorf("rowsize = %v, want [2 0]", rowsize)
	}
}

func TestRegularRoundTrip(t *testing.T) {
	flat := []float64{1, 2, 3, 4, 5, 6, 7}
	rowsize := []int{3, 1, 3}

	regular, err := ToRegular(flat, rowsize, math.NaN())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	backFlat, backSizes := FromRegular(regular, math.NaN())

	if !reflect.DeepEqual(backFlat, flat) {
		t.Errorf("round trip flat = %v, want %v", backFlat, flat)
	}
	if !reflect.DeepEqual(backSizes, rowsize) {
		t.Errorf("round trip rowsize = %v, want %v", backSizes, rowsize)
	}
}
