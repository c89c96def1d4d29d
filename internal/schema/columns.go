package schema

// ColumnDef describes one column a datatype can emit.
type ColumnDef struct {
	Name    string
	Type    ColumnType
	Default bool
}

// Definition is the full column list of a datatype plus its default sort order.
type Definition struct {
	Columns     []ColumnDef
	SortColumns []string
}

// EventColumnPrefix prefixes the decoded event argument columns of Logs.
const EventColumnPrefix = "event__"

func col(name string, typ ColumnType) ColumnDef {
	return ColumnDef{Name: name, Type: typ, Default: true}
}

func optional(name string, typ ColumnType) ColumnDef {
	return ColumnDef{Name: name, Type: typ}
}

var definitions = map[Datatype]Definition{
	Blocks: {
		Columns: []ColumnDef{
			col("block_number", ColumnTypeUInt32),
			col("hash", ColumnTypeBinary),
			optional("parent_hash", ColumnTypeBinary),
			col("author", ColumnTypeBinary),
			optional("state_root", ColumnTypeBinary),
			optional("transactions_root", ColumnTypeBinary),
			optional("receipts_root", ColumnTypeBinary),
			col("gas_used", ColumnTypeUInt64),
			optional("gas_limit", ColumnTypeUInt64),
			col("extra_data", ColumnTypeBinary),
			optional("logs_bloom", ColumnTypeBinary),
			col("timestamp", ColumnTypeUInt32),
			optional("total_difficulty", ColumnTypeUInt256),
			optional("size", ColumnTypeUInt32),
			col("base_fee_per_gas", ColumnTypeUInt64),
			col("chain_id", ColumnTypeUInt64),
		},
		SortColumns: []string{"block_number"},
	},
	Logs: {
		Columns: []ColumnDef{
			col("block_number", ColumnTypeUInt32),
			col("transaction_index", ColumnTypeUInt32),
			col("log_index", ColumnTypeUInt32),
			col("transaction_hash", ColumnTypeBinary),
			col("address", ColumnTypeBinary),
			col("topic0", ColumnTypeBinary),
			col("topic1", ColumnTypeBinary),
			col("topic2", ColumnTypeBinary),
			col("topic3", ColumnTypeBinary),
			col("data", ColumnTypeBinary),
			col("chain_id", ColumnTypeUInt64),
		},
		SortColumns: []string{"block_number", "log_index"},
	},
	Traces: {
		Columns: []ColumnDef{
			col("action_from", ColumnTypeBinary),
			col("action_to", ColumnTypeBinary),
			col("action_value", ColumnTypeUInt256),
			col("action_gas", ColumnTypeUInt64),
			col("action_input", ColumnTypeBinary),
			col("action_call_type", ColumnTypeString),
			col("action_init", ColumnTypeBinary),
			col("action_reward_type", ColumnTypeString),
			optional("action_refund_address", ColumnTypeBinary),
			col("action_type", ColumnTypeString),
			col("result_gas_used", ColumnTypeUInt64),
			col("result_output", ColumnTypeBinary),
			col("result_code", ColumnTypeBinary),
			col("result_address", ColumnTypeBinary),
			col("trace_address", ColumnTypeString),
			col("subtraces", ColumnTypeUInt64),
			col("transaction_position", ColumnTypeUInt32),
			col("transaction_hash", ColumnTypeBinary),
			col("block_number", ColumnTypeUInt32),
			col("block_hash", ColumnTypeBinary),
			col("error", ColumnTypeString),
			col("chain_id", ColumnTypeUInt64),
		},
		SortColumns: []string{"block_number", "transaction_position", "trace_address"},
	},
	Contracts: {
		Columns: []ColumnDef{
			col("block_number", ColumnTypeUInt32),
			col("create_index", ColumnTypeUInt32),
			col("transaction_hash", ColumnTypeBinary),
			col("contract_address", ColumnTypeBinary),
			col("deployer", ColumnTypeBinary),
			col("factory", ColumnTypeBinary),
			col("init_code", ColumnTypeBinary),
			col("code", ColumnTypeBinary),
			col("init_code_hash", ColumnTypeBinary),
			col("code_hash", ColumnTypeBinary),
			col("chain_id", ColumnTypeUInt64),
		},
		SortColumns: []string{"block_number", "create_index"},
	},
	CodeDiffs:    diffDefinition(ColumnTypeBinary),
	BalanceDiffs: diffDefinition(ColumnTypeUInt256),
	NonceDiffs:   diffDefinition(ColumnTypeUInt64),
	Erc20Metadata: {
		Columns: []ColumnDef{
			col("block_number", ColumnTypeUInt32),
			col("erc20", ColumnTypeBinary),
			col("name", ColumnTypeString),
			col("symbol", ColumnTypeString),
			col("decimals", ColumnTypeUInt32),
			col("chain_id", ColumnTypeUInt64),
		},
		SortColumns: []string{"erc20", "block_number"},
	},
	Erc721Transfers: {
		Columns: []ColumnDef{
			col("block_number", ColumnTypeUInt32),
			col("transaction_index", ColumnTypeUInt32),
			col("log_index", ColumnTypeUInt32),
			col("transaction_hash", ColumnTypeBinary),
			col("erc721", ColumnTypeBinary),
			col("from_address", ColumnTypeBinary),
			col("to_address", ColumnTypeBinary),
			col("token_id", ColumnTypeUInt256),
			col("chain_id", ColumnTypeUInt64),
		},
		SortColumns: []string{"block_number", "log_index"},
	},
	NativeTransfers: {
		Columns: []ColumnDef{
			col("block_number", ColumnTypeUInt32),
			col("transaction_index", ColumnTypeUInt32),
			col("transfer_index", ColumnTypeUInt32),
			col("transaction_hash", ColumnTypeBinary),
			col("from_address", ColumnTypeBinary),
			col("to_address", ColumnTypeBinary),
			col("value", ColumnTypeUInt256),
			col("chain_id", ColumnTypeUInt64),
		},
		SortColumns: []string{"block_number", "transfer_index"},
	},
}

func diffDefinition(valueType ColumnType) Definition {
	return Definition{
		Columns: []ColumnDef{
			col("block_number", ColumnTypeUInt32),
			col("transaction_index", ColumnTypeUInt64),
			col("transaction_hash", ColumnTypeBinary),
			col("address", ColumnTypeBinary),
			col("from_value", valueType),
			col("to_value", valueType),
			col("chain_id", ColumnTypeUInt64),
		},
		SortColumns: []string{"block_number", "transaction_index"},
	}
}

// DefinitionOf returns the column definition of a datatype.
func DefinitionOf(d Datatype) (Definition, bool) {
	def, ok := definitions[d]
	return def, ok
}

// ColumnNames lists every column the datatype can emit, in definition order.
func (d Definition) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// DefaultColumnNames lists the columns enabled when no selection is given.
func (d Definition) DefaultColumnNames() []string {
	var names []string
	for _, c := range d.Columns {
		if c.Default {
			names = append(names, c.Name)
		}
	}
	return names
}

func (d Definition) column(name string) (ColumnDef, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnDef{}, false
}
