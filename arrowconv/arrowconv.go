// Package arrowconv exchanges ragged datasets with Apache Arrow records.
// A dataset maps to one record over the row dimension: row-dimension
// variables become flat Arrow columns and observation-dimension variables
// become Arrow list columns, whose value offsets are exactly the dataset's
// boundary offsets.
package arrowconv

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/driftlab/ragged"
	"github.com/driftlab/ragged/dataset"
)

// ToRecord converts a dataset into an Arrow record over the row dimension.
// The row-size variable is written both as a plain int64 column and
// implicitly as the offsets of every list column. The caller owns the
// returned record and must Release it.
func ToRecord(mem memory.Allocator, ds *dataset.Dataset) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	rowsize, err := ds.Rowsize()
	if err != nil {
		return nil, err
	}
	offsets := ragged.Offsets(rowsize)

	cfg := ds.Config()
	var fields []arrow.Field
	var cols []arrow.Array
	for _, name := range ds.VarNames() {
		v, _ := ds.Var(name)

		elem, err := arrowType(v.Data)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}

		if v.Dim == cfg.RowDim {
			arr, err := buildFlat(mem, v.Data)
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", name, err)
			}
			fields = append(fields, arrow.Field{Name: name, Type: elem})
			cols = append(cols, arr)
			continue
		}

		arr, err := buildList(mem, v.Data, offsets)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		fields = append(fields, arrow.Field{Name: name, Type: arrow.ListOf(elem)})
		cols = append(cols, arr)
	}

	schema := arrow.NewSchema(fields, nil)
	rec := array.NewRecord(schema, cols, int64(ds.RowCount()))
	for _, c := range cols {
		c.Release()
	}
	return rec, nil
}

// FromRecord converts an Arrow record back into a ragged dataset. List
// columns become observation-dimension variables; every other column becomes
// a row-dimension variable. The row-size variable named by cfg must be
// present, and every list column's offsets must agree with it.
func FromRecord(rec arrow.Record, cfg dataset.Config) (*dataset.Dataset, error) {
	ds := dataset.New(cfg)

	var rowsize []int
	if idx := rec.Schema().FieldIndices(cfg.RowsizeVar); len(idx) == 1 {
		sizes, ok := rec.Column(idx[0]).(*array.Int64)
		if !ok {
			return nil, fmt.Errorf("row-size column %q must be int64, got %s", cfg.RowsizeVar, rec.Column(idx[0]).DataType())
		}
		rowsize = make([]int, sizes.Len())
		for i := 0; i < sizes.Len(); i++ {
			rowsize[i] = int(sizes.Value(i))
		}
	} else {
		return nil, fmt.Errorf("record has no %q column", cfg.RowsizeVar)
	}
	offsets := ragged.Offsets(rowsize)

	for i, field := range rec.Schema().Fields() {
		col := rec.Column(i)

		list, isList := col.(*array.List)
		if !isList {
			data, err := flatColumn(col)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", field.Name, err)
			}
			if err := ds.AddVar(field.Name, cfg.RowDim, data); err != nil {
				return nil, err
			}
			continue
		}

		for row := 0; row < list.Len(); row++ {
			lo, hi := list.ValueOffsets(row)
			if int(lo) != offsets[row] || int(hi) != offsets[row+1] {
				return nil, fmt.Errorf("%w: list column %q row %d spans [%d, %d), rowsize expects [%d, %d)",
					ragged.ErrRowsizeMismatch, field.Name, row, lo, hi, offsets[row], offsets[row+1])
			}
		}
		data, err := flatColumn(list.ListValues())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", field.Name, err)
		}
		if err := ds.AddVar(field.Name, cfg.ObsDim, data); err != nil {
			return nil, err
		}
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// arrowType maps a dataset column type to its Arrow element type.
func arrowType(col dataset.Column) (arrow.DataType, error) {
	switch col.(type) {
	case dataset.Float64s:
		return arrow.PrimitiveTypes.Float64, nil
	case dataset.Int64s:
		return arrow.PrimitiveTypes.Int64, nil
	case dataset.Bools:
		return arrow.FixedWidthTypes.Boolean, nil
	case dataset.Strings:
		return arrow.BinaryTypes.String, nil
	case dataset.Times:
		return arrow.FixedWidthTypes.Timestamp_ns, nil
	default:
		return nil, fmt.Errorf("unsupported column type %T", col)
	}
}

// buildFlat builds a flat Arrow array from a column.
func buildFlat(mem memory.Allocator, col dataset.Column) (arrow.Array, error) {
	dt, err := arrowType(col)
	if err != nil {
		return nil, err
	}
	b := array.NewBuilder(mem, dt)
	defer b.Release()
	if err := appendColumn(b, col); err != nil {
		return nil, err
	}
	return b.NewArray(), nil
}

// buildList builds an Arrow list array whose rows are the column's boundary
// ranges.
func buildList(mem memory.Allocator, col dataset.Column, offsets []int) (arrow.Array, error) {
	dt, err := arrowType(col)
	if err != nil {
		return nil, err
	}
	lb := array.NewListBuilder(mem, dt)
	defer lb.Release()

	for row := 0; row+1 < len(offsets); row++ {
		lb.Append(true)
		if err := appendColumn(lb.ValueBuilder(), col.Slice(offsets[row], offsets[row+1])); err != nil {
			return nil, err
		}
	}
	return lb.NewArray(), nil
}

// appendColumn appends every value of a column to an Arrow builder.
func appendColumn(b array.Builder, col dataset.Column) error {
	switch c := col.(type) {
	case dataset.Float64s:
		b.(*array.Float64Builder).AppendValues(c, nil)
	case dataset.Int64s:
		b.(*array.Int64Builder).AppendValues(c, nil)
	case dataset.Bools:
		b.(*array.BooleanBuilder).AppendValues(c, nil)
	case dataset.Strings:
		b.(*array.StringBuilder).AppendValues(c, nil)
	case dataset.Times:
		tb := b.(*array.TimestampBuilder)
		for _, t := range c {
			tb.Append(arrow.Timestamp(t.UnixNano()))
		}
	default:
		return fmt.Errorf("unsupported column type %T", col)
	}
	return nil
}

// flatColumn converts a flat Arrow array back into a dataset column.
func flatColumn(arr arrow.Array) (dataset.Column, error) {
	switch a := arr.(type) {
	case *array.Float64:
		out := make(dataset.Float64s, a.Len())
		for i := range out {
			out[i] = a.Value(i)
		}
		return out, nil
	case *array.Int64:
		out := make(dataset.Int64s, a.Len())
		for i := range out {
			out[i] = a.Value(i)
		}
		return out, nil
	case *array.Boolean:
		out := make(dataset.Bools, a.Len())
		for i := range out {
			out[i] = a.Value(i)
		}
		return out, nil
	case *array.String:
		out := make(dataset.Strings, a.Len())
		for i := range out {
			out[i] = a.Value(i)
		}
		return out, nil
	case *array.Timestamp:
		out := make(dataset.Times, a.Len())
		for i := range out {
			out[i] = time.Unix(0, int64(a.Value(i))).UTC()
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported arrow type %s", arr.DataType())
	}
}
