package schema

import (
	"fmt"
	"strings"
)

type Datatype int

const (
	Blocks Datatype = iota
	Logs
	Traces
	Contracts
	CodeDiffs
	BalanceDiffs
	NonceDiffs
	Erc20Metadata
	Erc721Transfers
	NativeTransfers
)

var datatypeNames = map[Datatype]string{
	Blocks:          "blocks",
	Logs:            "logs",
	Traces:          "traces",
	Contracts:       "contracts",
	CodeDiffs:       "code_diffs",
	BalanceDiffs:    "balance_diffs",
	NonceDiffs:      "nonce_diffs",
	Erc20Metadata:   "erc20_metadata",
	Erc721Transfers: "erc721_transfers",
	NativeTransfers: "native_transfers",
}

func (d Datatype) String() string {
	if name, ok := datatypeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Datatype(%d)", int(d))
}

// AllDatatypes returns every datatype in declaration order.
func AllDatatypes() []Datatype {
	all := make([]Datatype, 0, len(datatypeNames))
	for d := Blocks; d <= NativeTransfers; d++ {
		all = append(all, d)
	}
	return all
}

// ParseDatatype accepts the snake_case name, with dashes or without underscores.
func ParseDatatype(name string) (Datatype, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for d, n := range datatypeNames {
		if n == normalized || strings.ReplaceAll(n, "_", "") == normalized {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown datatype %q", name)
}

type ColumnType int

const (
	ColumnTypeUInt32 ColumnType = iota
	ColumnTypeUInt64
	ColumnTypeInt64
	ColumnTypeFloat64
	ColumnTypeBoolean
	ColumnTypeString
	ColumnTypeBinary
	ColumnTypeUInt256
)

func (t ColumnType) String() string {
	switch t {
	case ColumnTypeUInt32:
		return "uint32"
	case ColumnTypeUInt64:
		return "uint64"
	case ColumnTypeInt64:
		return "int64"
	case ColumnTypeFloat64:
		return "float64"
	case ColumnTypeBoolean:
		return "boolean"
	case ColumnTypeString:
		return "string"
	case ColumnTypeBinary:
		return "binary"
	case ColumnTypeUInt256:
		return "uint256"
	}
	return fmt.Sprintf("ColumnType(%d)", int(t))
}

// ColumnEncoding selects how binary columns are rendered.
type ColumnEncoding int

const (
	EncodingBinary ColumnEncoding = iota
	EncodingHex
)

// U256Type selects how 256-bit integer columns are rendered.
type U256Type int

const (
	U256Binary U256Type = iota
	U256Hex
	U256Decimal
)

func (u U256Type) String() string {
	switch u {
	case U256Binary:
		return "binary"
	case U256Hex:
		return "hex"
	case U256Decimal:
		return "decimal"
	}
	return fmt.Sprintf("U256Type(%d)", int(u))
}

func ParseU256Type(name string) (U256Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "binary", "bytes":
		return U256Binary, nil
	case "hex":
		return U256Hex, nil
	case "decimal", "string":
		return U256Decimal, nil
	}
	return 0, fmt.Errorf("unknown u256 type %q", name)
}
