package collect

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

// store appends v to dst only when the table marks the column active.
func store[T any](t *schema.Table, name string, dst *[]T, v T) {
	if t.HasColumn(name) {
		*dst = append(*dst, v)
	}
}

func ptr[T any](v T) *T {
	return &v
}

// arrowType is the output type of an active column after encodings apply.
func arrowType(t *schema.Table, name string) arrow.DataType {
	typ, _ := t.ColumnType(name)
	switch typ {
	case schema.ColumnTypeUInt32:
		return arrow.PrimitiveTypes.Uint32
	case schema.ColumnTypeUInt64:
		return arrow.PrimitiveTypes.Uint64
	case schema.ColumnTypeInt64:
		return arrow.PrimitiveTypes.Int64
	case schema.ColumnTypeFloat64:
		return arrow.PrimitiveTypes.Float64
	case schema.ColumnTypeBoolean:
		return arrow.FixedWidthTypes.Boolean
	case schema.ColumnTypeString:
		return arrow.BinaryTypes.String
	case schema.ColumnTypeBinary:
		if t.Encoding(name) == schema.EncodingHex {
			return arrow.BinaryTypes.String
		}
	case schema.ColumnTypeUInt256:
		if t.U256Type(name) != schema.U256Binary {
			return arrow.BinaryTypes.String
		}
	}
	return arrow.BinaryTypes.Binary
}

// frameBuilder fills one arrow record builder field per active column. Every
// active column must receive exactly one value per row; the first error sticks
// and is returned by build.
type frameBuilder struct {
	table   *schema.Table
	rows    int
	builder *array.RecordBuilder
	fields  map[string]int
	filled  map[string]bool
	err     error
}

func newFrameBuilder(t *schema.Table, rows int) *frameBuilder {
	names := t.Columns()
	fields := make([]arrow.Field, len(names))
	index := make(map[string]int, len(names))
	for i, name := range names {
		fields[i] = arrow.Field{Name: name, Type: arrowType(t, name), Nullable: true}
		index[name] = i
	}
	return &frameBuilder{
		table:   t,
		rows:    rows,
		builder: array.NewRecordBuilder(dataframe.Allocator, arrow.NewSchema(fields, nil)),
		fields:  index,
		filled:  make(map[string]bool, len(names)),
	}
}

// appendColumn appends values through the typed field builder B of the column.
func appendColumn[T any, B array.Builder](b *frameBuilder, name string, values []T, appendValue func(B, T)) {
	if b.err != nil {
		return
	}
	idx, active := b.fields[name]
	if !active {
		if len(values) != 0 {
			b.err = fmt.Errorf("inactive column %s of %s holds %d values", name, b.table.Datatype, len(values))
		}
		return
	}
	if len(values) != b.rows {
		b.err = fmt.Errorf("column %s of %s has %d values, expected %d rows", name, b.table.Datatype, len(values), b.rows)
		return
	}
	field, ok := b.builder.Field(idx).(B)
	if !ok {
		b.err = fmt.Errorf("column %s of %s is %s, cannot append %T", name, b.table.Datatype, b.builder.Field(idx).Type(), values)
		return
	}
	field.Reserve(len(values))
	for _, v := range values {
		appendValue(field, v)
	}
	b.filled[name] = true
}

func (b *frameBuilder) uint32s(name string, values []uint32) {
	appendColumn(b, name, values, func(f *array.Uint32Builder, v uint32) { f.Append(v) })
}

func (b *frameBuilder) optUint32s(name string, values []*uint32) {
	appendColumn(b, name, values, func(f *array.Uint32Builder, v *uint32) {
		if v == nil {
			f.AppendNull()
			return
		}
		f.Append(*v)
	})
}

func (b *frameBuilder) uint64s(name string, values []uint64) {
	appendColumn(b, name, values, func(f *array.Uint64Builder, v uint64) { f.Append(v) })
}

func (b *frameBuilder) optUint64s(name string, values []*uint64) {
	appendColumn(b, name, values, func(f *array.Uint64Builder, v *uint64) {
		if v == nil {
			f.AppendNull()
			return
		}
		f.Append(*v)
	})
}

func (b *frameBuilder) strings(name string, values []string) {
	appendColumn(b, name, values, func(f *array.StringBuilder, v string) { f.Append(v) })
}

func (b *frameBuilder) optStrings(name string, values []*string) {
	appendColumn(b, name, values, func(f *array.StringBuilder, v *string) {
		if v == nil {
			f.AppendNull()
			return
		}
		f.Append(*v)
	})
}

// binary renders byte columns as raw bytes or 0x hex text. A nil entry is null.
func (b *frameBuilder) binary(name string, values [][]byte) {
	if b.table.Encoding(name) == schema.EncodingHex {
		appendColumn(b, name, values, func(f *array.StringBuilder, v []byte) {
			if v == nil {
				f.AppendNull()
				return
			}
			f.Append(hexutil.Encode(v))
		})
		return
	}
	appendColumn(b, name, values, func(f *array.BinaryBuilder, v []byte) {
		if v == nil {
			f.AppendNull()
			return
		}
		f.Append(v)
	})
}

// u256s renders 256-bit integers per the column's U256Type. A nil entry is null.
func (b *frameBuilder) u256s(name string, values []*uint256.Int) {
	switch b.table.U256Type(name) {
	case schema.U256Hex, schema.U256Decimal:
		decimal := b.table.U256Type(name) == schema.U256Decimal
		appendColumn(b, name, values, func(f *array.StringBuilder, v *uint256.Int) {
			switch {
			case v == nil:
				f.AppendNull()
			case decimal:
				f.Append(v.Dec())
			default:
				f.Append(v.Hex())
			}
		})
	default:
		appendColumn(b, name, values, func(f *array.BinaryBuilder, v *uint256.Int) {
			if v == nil {
				f.AppendNull()
				return
			}
			word := v.Bytes32()
			f.Append(word[:])
		})
	}
}

// chainID fills the constant chain_id column.
func (b *frameBuilder) chainID(chainID uint64) {
	if !b.table.HasColumn("chain_id") {
		return
	}
	values := make([]uint64, b.rows)
	for i := range values {
		values[i] = chainID
	}
	b.uint64s("chain_id", values)
}

func (b *frameBuilder) build() (*dataframe.Frame, error) {
	defer b.builder.Release()
	if b.err != nil {
		return nil, b.err
	}
	for _, name := range b.table.Columns() {
		if !b.filled[name] {
			return nil, fmt.Errorf("active column %s of %s was not materialized", name, b.table.Datatype)
		}
	}
	return dataframe.FromRecord(b.builder.NewRecord()), nil
}
