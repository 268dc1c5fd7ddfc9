package ragged

import (
	"errors"
	"reflect"
	"testing"
)

func TestOffsets(t *testing.T) {
	tests := []struct {
		name    string
		rowsize []int
		want    []int
	}{
		{"empty", nil, []int{0}},
		{"single row", []int{5}, []int{0, 5}},
		{"several rows", []int{1, 2, 3}, []int{0, 1, 3, 6}},
		{"zero-length rows", []int{2, 0, 3}, []int{0, 2, 2, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Offsets(tt.rowsize)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Offsets(%v) = %v, want %v", tt.rowsize, got, tt.want)
			}
		})
	}
}

func TestOffsets_Shape(t *testing.T) {
	rowsize := []int{4, 0, 7, 1}

	offsets := Offsets(rowsize)
	if len(offsets) != len(rowsize)+1 {
		t.Fatalf("expected length %d, got %d", len(rowsize)+1, len(offsets))
	}
	if offsets[0] != 0 {
		t.Errorf("expected leading 0, got %d", offsets[0])
	}
	if offsets[len(offsets)-1] != 12 {
		t.Errorf("expected trailing total 12, got %d", offsets[len(offsets)-1])
	}
	for i := 0; i+1 < len(offsets); i++ {
		if offsets[i] > offsets[i+1] {
			t.Errorf("offsets not monotone at %d: %v", i, offsets)
		}
	}
}

func TestRowOf(t *testing.T) {
	rowsize := []int{3, 1, 2}

	tests := []struct {
		index int
		want  int
	}{
		{0, 0},
		{2, 0},
		{3, 1},
		{4, 2},
		{5, 2},
	}

	for _, tt := range tests {
		row, err := RowOf(tt.index, rowsize)
		if err != nil {
			t.Fatalf("RowOf(%d): unexpected error: %v", tt.index, err)
		}
		if row != tt.want {
			t.Errorf("RowOf(%d) = %d, want %d", tt.index, row, tt.want)
		}
	}
}

func TestRowOf_EmptyRows(t *testing.T) {
	// Observations after an empty row belong to the later row.
	rowsize := []int{2, 0, 3}

	row, err := RowOf(2, rowsize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row != 2 {
		t.Errorf("RowOf(2) = %d, want 2", row)
	}
}

func TestRowsOf(t *testing.T) {
	rowsize := []int{3, 1, 2}

	rows, err := RowsOf([]int{5, 0, 3, 3}, rowsize)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{2, 0, 1, 1}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("RowsOf = %v, want %v", rows, want)
	}
}

func TestRowsOf_OutOfBounds(t *testing.T) {
	rowsize := []int{3, 1, 2}

	for _, idx := range []int{-1, 6, 100} {
		if _, err := RowsOf([]int{idx}, rowsize); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Errorf("RowsOf(%d): expected ErrIndexOutOfBounds, got %v", idx, err)
		}
	}
}
