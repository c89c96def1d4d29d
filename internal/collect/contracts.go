package collect

import (
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

var contractsKind = &kind[[]common.Trace, ContractColumns, *ContractColumns]{
	datatype: schema.Contracts,
	byBlock: &Stage[[]common.Trace, ContractColumns]{
		Dims:      []ChunkDim{DimBlockNumber},
		Extract:   extractBlockTraces,
		Transform: transformContracts,
	},
	byTransaction: &Stage[[]common.Trace, ContractColumns]{
		Dims:      []ChunkDim{DimTransactionHash},
		Extract:   extractTransactionTraces,
		Transform: transformContracts,
	},
}

func transformContracts(traces []common.Trace, columns *ContractColumns, schemas *schema.Registry) error {
	t, err := tableFor(schemas, schema.Contracts)
	if err != nil {
		return err
	}
	processContracts(traces, columns, t)
	return nil
}

type ContractColumns struct {
	nRows           int
	blockNumber     []uint32
	createIndex     []uint32
	transactionHash [][]byte
	contractAddress [][]byte
	deployer        [][]byte
	factory         [][]byte
	initCode        [][]byte
	code            [][]byte
	initCodeHash    [][]byte
	codeHash        [][]byte
}

// deployerState is the origin of the top-level call that nested traces belong to.
type deployerState struct {
	deployer gethCommon.Address
}

// next returns the state after visiting trace. Root traces reset the deployer
// to their action's origin; nested traces inherit it.
func (s deployerState) next(trace *common.Trace) deployerState {
	if !trace.IsRoot() {
		return s
	}
	switch trace.Action.Type {
	case common.ActionCall:
		return deployerState{deployer: trace.Action.Call.From}
	case common.ActionCreate:
		return deployerState{deployer: trace.Action.Create.From}
	case common.ActionSuicide:
		return deployerState{deployer: trace.Action.Suicide.RefundAddress}
	case common.ActionReward:
		return deployerState{deployer: trace.Action.Reward.Author}
	}
	return s
}

// processContracts emits one row per successful contract creation.
// create_index counts emitted rows of this response only.
func processContracts(traces []common.Trace, columns *ContractColumns, t *schema.Table) {
	var state deployerState
	var createIndex uint32
	for _, trace := range filterFailedTraces(traces) {
		state = state.next(&trace)

		if trace.Action.Type != common.ActionCreate || trace.Result == nil || trace.Result.Create == nil {
			continue
		}
		create := trace.Action.Create
		result := trace.Result.Create

		columns.nRows++
		store(t, "block_number", &columns.blockNumber, uint32(trace.BlockNumber))
		store(t, "create_index", &columns.createIndex, createIndex)
		createIndex++
		store(t, "transaction_hash", &columns.transactionHash, traceTransactionHash(&trace))
		store(t, "contract_address", &columns.contractAddress, result.Address.Bytes())
		store(t, "deployer", &columns.deployer, state.deployer.Bytes())
		store(t, "factory", &columns.factory, create.From.Bytes())
		store(t, "init_code", &columns.initCode, nonNil(create.Init))
		store(t, "code", &columns.code, nonNil(result.Code))
		store(t, "init_code_hash", &columns.initCodeHash, crypto.Keccak256(create.Init))
		store(t, "code_hash", &columns.codeHash, crypto.Keccak256(result.Code))
	}
}

func (c *ContractColumns) toFrame(t *schema.Table, chainID uint64) (*dataframe.Frame, error) {
	b := newFrameBuilder(t, c.nRows)
	b.uint32s("block_number", c.blockNumber)
	b.uint32s("create_index", c.createIndex)
	b.binary("transaction_hash", c.transactionHash)
	b.binary("contract_address", c.contractAddress)
	b.binary("deployer", c.deployer)
	b.binary("factory", c.factory)
	b.binary("init_code", c.initCode)
	b.binary("code", c.code)
	b.binary("init_code_hash", c.initCodeHash)
	b.binary("code_hash", c.codeHash)
	b.chainID(chainID)
	return b.build()
}
