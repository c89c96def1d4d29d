package collect

import (
	"github.com/holiman/uint256"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

var nativeTransfersKind = &kind[[]common.Trace, NativeTransferColumns, *NativeTransferColumns]{
	datatype: schema.NativeTransfers,
	byBlock: &Stage[[]common.Trace, NativeTransferColumns]{
		Dims:      []ChunkDim{DimBlockNumber},
		Extract:   extractBlockTraces,
		Transform: transformNativeTransfers,
	},
	byTransaction: &Stage[[]common.Trace, NativeTransferColumns]{
		Dims:      []ChunkDim{DimTransactionHash},
		Extract:   extractTransactionTraces,
		Transform: transformNativeTransfers,
	},
}

func transformNativeTransfers(traces []common.Trace, columns *NativeTransferColumns, schemas *schema.Registry) error {
	t, err := tableFor(schemas, schema.NativeTransfers)
	if err != nil {
		return err
	}
	return processNativeTransfers(traces, columns, t)
}

type NativeTransferColumns struct {
	nRows            int
	blockNumber      []uint32
	transactionIndex []*uint32
	transferIndex    []uint32
	transactionHash  [][]byte
	fromAddress      [][]byte
	toAddress        [][]byte
	value            []*uint256.Int
}

var zeroAddress = make([]byte, 20)

type nativeTransfer struct {
	from, to []byte
	value    *uint256.Int
}

func resolveNativeTransfer(trace *common.Trace) (nativeTransfer, error) {
	switch trace.Action.Type {
	case common.ActionCall:
		a := trace.Action.Call
		return nativeTransfer{from: a.From.Bytes(), to: a.To.Bytes(), value: bigToU256(&a.Value)}, nil
	case common.ActionCreate:
		a := trace.Action.Create
		if trace.Result == nil || trace.Result.Create == nil {
			return nativeTransfer{}, malformed(schema.NativeTransfers, "create trace %s at block %d has no create result", trace.TraceAddressString(), trace.BlockNumber)
		}
		return nativeTransfer{from: a.From.Bytes(), to: trace.Result.Create.Address.Bytes(), value: bigToU256(&a.Value)}, nil
	case common.ActionSuicide:
		a := trace.Action.Suicide
		return nativeTransfer{from: a.Address.Bytes(), to: a.RefundAddress.Bytes(), value: bigToU256(&a.Balance)}, nil
	case common.ActionReward:
		a := trace.Action.Reward
		return nativeTransfer{from: zeroAddress, to: a.Author.Bytes(), value: bigToU256(&a.Value)}, nil
	}
	return nativeTransfer{}, malformed(schema.NativeTransfers, "unknown trace action %q", trace.Action.Type)
}

// processNativeTransfers emits exactly one row per trace. Every trace is
// resolved before any column is written so a malformed trace leaves the
// columns untouched.
func processNativeTransfers(traces []common.Trace, columns *NativeTransferColumns, t *schema.Table) error {
	transfers := make([]nativeTransfer, len(traces))
	for i := range traces {
		transfer, err := resolveNativeTransfer(&traces[i])
		if err != nil {
			return err
		}
		transfers[i] = transfer
	}

	for i := range traces {
		trace := &traces[i]
		transfer := transfers[i]
		columns.nRows++
		store(t, "block_number", &columns.blockNumber, uint32(trace.BlockNumber))
		store(t, "transaction_index", &columns.transactionIndex, transactionPosition(trace))
		store(t, "transfer_index", &columns.transferIndex, uint32(i))
		store(t, "transaction_hash", &columns.transactionHash, traceTransactionHash(trace))
		store(t, "from_address", &columns.fromAddress, transfer.from)
		store(t, "to_address", &columns.toAddress, transfer.to)
		store(t, "value", &columns.value, transfer.value)
	}
	return nil
}

func (c *NativeTransferColumns) toFrame(t *schema.Table, chainID uint64) (*dataframe.Frame, error) {
	b := newFrameBuilder(t, c.nRows)
	b.uint32s("block_number", c.blockNumber)
	b.optUint32s("transaction_index", c.transactionIndex)
	b.uint32s("transfer_index", c.transferIndex)
	b.binary("transaction_hash", c.transactionHash)
	b.binary("from_address", c.fromAddress)
	b.binary("to_address", c.toAddress)
	b.u256s("value", c.value)
	b.chainID(chainID)
	return b.build()
}
