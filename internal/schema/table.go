package schema

import (
	"github.com/thirdweb-dev/freeze/internal/common"
)

// Table is the resolved output schema of one datatype. It is immutable once built
// and safe to share between goroutines.
type Table struct {
	Datatype    Datatype
	columns     []string
	types       map[string]ColumnType
	hexColumns  map[string]bool
	hex         bool
	u256Types   map[string]U256Type
	sortColumns []string
	LogDecoder  *common.LogDecoder
}

// HasColumn reports whether the column is active.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.types[name]
	return ok
}

// Columns returns the active columns in output order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *Table) ColumnType(name string) (ColumnType, bool) {
	typ, ok := t.types[name]
	return typ, ok
}

// Encoding returns how a binary column is rendered. Columns outside the
// definition, such as decoded event arguments, follow the table-wide setting.
func (t *Table) Encoding(name string) ColumnEncoding {
	if t.hexColumns[name] || (t.hex && !t.HasColumn(name)) {
		return EncodingHex
	}
	return EncodingBinary
}

// U256Type returns how a 256-bit integer column is rendered.
func (t *Table) U256Type(name string) U256Type {
	return t.u256Types[name]
}

func (t *Table) SortColumns() []string {
	out := make([]string, len(t.sortColumns))
	copy(out, t.sortColumns)
	return out
}

// Registry maps datatypes to their tables. It has no mutating methods.
type Registry struct {
	tables map[Datatype]*Table
}

func NewRegistry(tables ...*Table) *Registry {
	r := &Registry{tables: make(map[Datatype]*Table, len(tables))}
	for _, t := range tables {
		r.tables[t.Datatype] = t
	}
	return r
}

func (r *Registry) Get(d Datatype) (*Table, bool) {
	t, ok := r.tables[d]
	return t, ok
}

// Datatypes returns the registered datatypes in declaration order.
func (r *Registry) Datatypes() []Datatype {
	var out []Datatype
	for _, d := range AllDatatypes() {
		if _, ok := r.tables[d]; ok {
			out = append(out, d)
		}
	}
	return out
}
