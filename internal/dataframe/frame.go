package dataframe

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Allocator backs every array built by this package and by the collectors.
var Allocator memory.Allocator = memory.DefaultAllocator

type Kind int

const (
	KindUInt32 Kind = iota
	KindUInt64
	KindInt64
	KindFloat64
	KindBool
	KindString
	KindBinary
)

func (k Kind) String() string {
	return k.DataType().String()
}

func (k Kind) DataType() arrow.DataType {
	switch k {
	case KindUInt32:
		return arrow.PrimitiveTypes.Uint32
	case KindUInt64:
		return arrow.PrimitiveTypes.Uint64
	case KindInt64:
		return arrow.PrimitiveTypes.Int64
	case KindFloat64:
		return arrow.PrimitiveTypes.Float64
	case KindBool:
		return arrow.FixedWidthTypes.Boolean
	case KindString:
		return arrow.BinaryTypes.String
	}
	return arrow.BinaryTypes.Binary
}

// BuildArray builds a nullable array from loosely typed values, as produced by
// the event decoder. A nil value is null; every other value must be the Go type
// of the kind (uint32, uint64, int64, float64, bool, string, []byte).
func BuildArray(kind Kind, values []interface{}) (arrow.Array, error) {
	b := array.NewBuilder(Allocator, kind.DataType())
	defer b.Release()
	b.Reserve(len(values))
	for i, v := range values {
		if v == nil {
			b.AppendNull()
			continue
		}
		if !appendValue(b, v) {
			return nil, fmt.Errorf("row %d: %T is not a %s value", i, v, kind)
		}
	}
	return b.NewArray(), nil
}

func appendValue(b array.Builder, v interface{}) bool {
	switch b := b.(type) {
	case *array.Uint32Builder:
		x, ok := v.(uint32)
		if ok {
			b.Append(x)
		}
		return ok
	case *array.Uint64Builder:
		x, ok := v.(uint64)
		if ok {
			b.Append(x)
		}
		return ok
	case *array.Int64Builder:
		x, ok := v.(int64)
		if ok {
			b.Append(x)
		}
		return ok
	case *array.Float64Builder:
		x, ok := v.(float64)
		if ok {
			b.Append(x)
		}
		return ok
	case *array.BooleanBuilder:
		x, ok := v.(bool)
		if ok {
			b.Append(x)
		}
		return ok
	case *array.StringBuilder:
		x, ok := v.(string)
		if ok {
			b.Append(x)
		}
		return ok
	case *array.BinaryBuilder:
		x, ok := v.([]byte)
		if ok {
			b.Append(x)
		}
		return ok
	}
	return false
}

// Column is a named array.
type Column struct {
	Name   string
	Values arrow.Array
}

// Frame is an arrow record with name based access and sorting.
type Frame struct {
	record arrow.Record
}

// FromRecord takes ownership of the record.
func FromRecord(record arrow.Record) *Frame {
	return &Frame{record: record}
}

// New assembles columns of equal length into a frame.
func New(columns ...Column) (*Frame, error) {
	f := FromRecord(array.NewRecord(arrow.NewSchema(nil, nil), nil, 0))
	for _, c := range columns {
		if err := f.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (f *Frame) Record() arrow.Record {
	return f.record
}

// AddColumn appends a nullable column. It fails on a duplicate name or on a
// length that differs from the existing columns.
func (f *Frame) AddColumn(c Column) error {
	if _, ok := f.Column(c.Name); ok {
		return fmt.Errorf("duplicate column %q", c.Name)
	}
	if f.Width() > 0 && c.Values.Len() != f.Height() {
		return fmt.Errorf("column %q has %d values, frame has %d rows", c.Name, c.Values.Len(), f.Height())
	}
	fields := append(slices.Clone(f.record.Schema().Fields()), arrow.Field{Name: c.Name, Type: c.Values.DataType(), Nullable: true})
	columns := append(slices.Clone(f.record.Columns()), c.Values)
	record := array.NewRecord(arrow.NewSchema(fields, nil), columns, int64(c.Values.Len()))
	f.record.Release()
	f.record = record
	return nil
}

func (f *Frame) Column(name string) (arrow.Array, bool) {
	indices := f.record.Schema().FieldIndices(name)
	if len(indices) == 0 {
		return nil, false
	}
	return f.record.Column(indices[0]), true
}

// Values returns the column as boxed Go values, nil for nulls.
func (f *Frame) Values(name string) ([]interface{}, bool) {
	arr, ok := f.Column(name)
	if !ok {
		return nil, false
	}
	out := make([]interface{}, arr.Len())
	for i := range out {
		if arr.IsValid(i) {
			out[i] = arr.GetOneForMarshal(i)
		}
	}
	return out, true
}

func (f *Frame) Columns() []string {
	fields := f.record.Schema().Fields()
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = field.Name
	}
	return names
}

func (f *Frame) Height() int {
	return int(f.record.NumRows())
}

func (f *Frame) Width() int {
	return int(f.record.NumCols())
}

func (f *Frame) Release() {
	f.record.Release()
}

// SortBy stably reorders all rows ascending by the given columns. Nulls sort first.
func (f *Frame) SortBy(columns ...string) error {
	comparators := make([]func(i, j int) int, len(columns))
	for i, name := range columns {
		arr, ok := f.Column(name)
		if !ok {
			return fmt.Errorf("cannot sort by missing column %q", name)
		}
		compare, err := comparator(arr)
		if err != nil {
			return fmt.Errorf("cannot sort by column %q: %w", name, err)
		}
		comparators[i] = compare
	}
	if len(comparators) == 0 || f.Height() < 2 {
		return nil
	}

	order := make([]int64, f.Height())
	for i := range order {
		order[i] = int64(i)
	}
	slices.SortStableFunc(order, func(a, b int64) int {
		for _, compare := range comparators {
			if c := compare(int(a), int(b)); c != 0 {
				return c
			}
		}
		return 0
	})

	ib := array.NewInt64Builder(Allocator)
	defer ib.Release()
	ib.AppendValues(order, nil)
	indices := ib.NewArray()
	defer indices.Release()

	sorted := make([]arrow.Array, f.Width())
	for i, col := range f.record.Columns() {
		taken, err := compute.TakeArray(context.Background(), col, indices)
		if err != nil {
			for _, done := range sorted[:i] {
				done.Release()
			}
			return fmt.Errorf("failed to reorder column %q: %w", f.record.ColumnName(i), err)
		}
		sorted[i] = taken
	}
	record := array.NewRecord(f.record.Schema(), sorted, f.record.NumRows())
	for _, col := range sorted {
		col.Release()
	}
	f.record.Release()
	f.record = record
	return nil
}

func comparator(arr arrow.Array) (func(i, j int) int, error) {
	var compare func(i, j int) int
	switch a := arr.(type) {
	case *array.Uint32:
		compare = func(i, j int) int { return cmp.Compare(a.Value(i), a.Value(j)) }
	case *array.Uint64:
		compare = func(i, j int) int { return cmp.Compare(a.Value(i), a.Value(j)) }
	case *array.Int64:
		compare = func(i, j int) int { return cmp.Compare(a.Value(i), a.Value(j)) }
	case *array.Float64:
		compare = func(i, j int) int { return cmp.Compare(a.Value(i), a.Value(j)) }
	case *array.String:
		compare = func(i, j int) int { return strings.Compare(a.Value(i), a.Value(j)) }
	case *array.Binary:
		compare = func(i, j int) int { return bytes.Compare(a.Value(i), a.Value(j)) }
	case *array.Boolean:
		compare = func(i, j int) int {
			vi, vj := a.Value(i), a.Value(j)
			switch {
			case vi == vj:
				return 0
			case !vi:
				return -1
			}
			return 1
		}
	default:
		return nil, fmt.Errorf("unsupported type %s", arr.DataType())
	}
	return func(i, j int) int {
		ni, nj := arr.IsNull(i), arr.IsNull(j)
		switch {
		case ni && nj:
			return 0
		case ni:
			return -1
		case nj:
			return 1
		}
		return compare(i, j)
	}, nil
}
