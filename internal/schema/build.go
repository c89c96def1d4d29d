package schema

import (
	"fmt"

	config "github.com/thirdweb-dev/freeze/configs"
	"github.com/thirdweb-dev/freeze/internal/common"
)

type ColumnSelection struct {
	// All enables every column of the datatype before Include/Exclude apply.
	All       bool
	Include   []string
	Exclude   []string
	Hex       []string
	U256Types map[string]U256Type
}

type Options struct {
	Datatypes []Datatype
	// Hex renders every binary column as 0x-prefixed text.
	Hex        bool
	U256Type   U256Type
	Columns    map[Datatype]ColumnSelection
	Sort       map[Datatype][]string
	LogDecoder *common.LogDecoder
}

// Build resolves one table per requested datatype.
func Build(opts Options) (*Registry, error) {
	if len(opts.Datatypes) == 0 {
		return nil, fmt.Errorf("no datatypes requested")
	}
	tables := make([]*Table, 0, len(opts.Datatypes))
	for _, d := range opts.Datatypes {
		t, err := NewTable(d, opts)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return NewRegistry(tables...), nil
}

func NewTable(d Datatype, opts Options) (*Table, error) {
	def, ok := definitions[d]
	if !ok {
		return nil, fmt.Errorf("no column definition for datatype %s", d)
	}
	selection := opts.Columns[d]

	active := make(map[string]bool, len(def.Columns))
	if selection.All {
		for _, c := range def.Columns {
			active[c.Name] = true
		}
	} else {
		for _, name := range def.DefaultColumnNames() {
			active[name] = true
		}
	}
	for _, name := range selection.Include {
		if _, ok := def.column(name); !ok {
			return nil, fmt.Errorf("datatype %s has no column %q", d, name)
		}
		active[name] = true
	}
	for _, name := range selection.Exclude {
		if _, ok := def.column(name); !ok {
			return nil, fmt.Errorf("datatype %s has no column %q", d, name)
		}
		delete(active, name)
	}

	t := &Table{
		Datatype:   d,
		types:      make(map[string]ColumnType, len(active)),
		hexColumns: make(map[string]bool),
		u256Types:  make(map[string]U256Type),
		hex:        opts.Hex,
	}
	for _, c := range def.Columns {
		if !active[c.Name] {
			continue
		}
		t.columns = append(t.columns, c.Name)
		t.types[c.Name] = c.Type
		switch c.Type {
		case ColumnTypeBinary:
			if opts.Hex {
				t.hexColumns[c.Name] = true
			}
		case ColumnTypeUInt256:
			t.u256Types[c.Name] = opts.U256Type
		}
	}

	for _, name := range selection.Hex {
		typ, ok := t.types[name]
		if !ok {
			return nil, fmt.Errorf("cannot hex encode inactive column %q of %s", name, d)
		}
		if typ != ColumnTypeBinary {
			return nil, fmt.Errorf("cannot hex encode %s column %q of %s", typ, name, d)
		}
		t.hexColumns[name] = true
	}
	for name, u256Type := range selection.U256Types {
		typ, ok := t.types[name]
		if !ok || typ != ColumnTypeUInt256 {
			return nil, fmt.Errorf("%q is not an active uint256 column of %s", name, d)
		}
		t.u256Types[name] = u256Type
	}

	if sortColumns, ok := opts.Sort[d]; ok {
		for _, name := range sortColumns {
			if !t.HasColumn(name) {
				return nil, fmt.Errorf("cannot sort %s by inactive column %q", d, name)
			}
		}
		t.sortColumns = sortColumns
	} else {
		for _, name := range def.SortColumns {
			if t.HasColumn(name) {
				t.sortColumns = append(t.sortColumns, name)
			}
		}
	}

	if d == Logs {
		t.LogDecoder = opts.LogDecoder
	}
	return t, nil
}

// OptionsFromConfig translates the freeze section of the configuration.
func OptionsFromConfig(cfg config.FreezeConfig) (Options, error) {
	opts := Options{
		Hex:     cfg.Hex,
		Columns: make(map[Datatype]ColumnSelection),
		Sort:    make(map[Datatype][]string),
	}
	for _, name := range cfg.Datatypes {
		d, err := ParseDatatype(name)
		if err != nil {
			return Options{}, err
		}
		opts.Datatypes = append(opts.Datatypes, d)
	}
	if cfg.U256Type != "" {
		u256Type, err := ParseU256Type(cfg.U256Type)
		if err != nil {
			return Options{}, err
		}
		opts.U256Type = u256Type
	}
	for name, selection := range cfg.Columns {
		d, err := ParseDatatype(name)
		if err != nil {
			return Options{}, err
		}
		converted := ColumnSelection{
			All:     selection.All,
			Include: selection.Include,
			Exclude: selection.Exclude,
			Hex:     selection.Hex,
		}
		if len(selection.U256Types) > 0 {
			converted.U256Types = make(map[string]U256Type, len(selection.U256Types))
			for column, typeName := range selection.U256Types {
				u256Type, err := ParseU256Type(typeName)
				if err != nil {
					return Options{}, err
				}
				converted.U256Types[column] = u256Type
			}
		}
		opts.Columns[d] = converted
	}
	for name, columns := range cfg.Sort {
		d, err := ParseDatatype(name)
		if err != nil {
			return Options{}, err
		}
		opts.Sort[d] = columns
	}
	if cfg.EventSignature != "" {
		decoder, err := common.NewLogDecoder(cfg.EventSignature)
		if err != nil {
			return Options{}, err
		}
		opts.LogDecoder = decoder
	}
	return opts, nil
}
