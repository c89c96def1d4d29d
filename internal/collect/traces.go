package collect

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/rpc"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

var tracesKind = &kind[[]common.Trace, TraceColumns, *TraceColumns]{
	datatype: schema.Traces,
	byBlock: &Stage[[]common.Trace, TraceColumns]{
		Dims:      []ChunkDim{DimBlockNumber},
		Extract:   extractBlockTraces,
		Transform: transformTraces,
	},
	byTransaction: &Stage[[]common.Trace, TraceColumns]{
		Dims:      []ChunkDim{DimTransactionHash},
		Extract:   extractTransactionTraces,
		Transform: transformTraces,
	},
}

func extractBlockTraces(ctx context.Context, req Request, fetcher rpc.IFetcher, _ *schema.Registry) ([]common.Trace, error) {
	blockNumber, err := req.BlockNumber()
	if err != nil {
		return nil, err
	}
	return fetcher.TraceBlock(ctx, blockNumber)
}

func extractTransactionTraces(ctx context.Context, req Request, fetcher rpc.IFetcher, _ *schema.Registry) ([]common.Trace, error) {
	txHash, err := req.TransactionHash()
	if err != nil {
		return nil, err
	}
	return fetcher.TraceTransaction(ctx, txHash)
}

func transformTraces(traces []common.Trace, columns *TraceColumns, schemas *schema.Registry) error {
	t, err := tableFor(schemas, schema.Traces)
	if err != nil {
		return err
	}
	processTraces(traces, columns, t)
	return nil
}

type TraceColumns struct {
	nRows               int
	actionFrom          [][]byte
	actionTo            [][]byte
	actionValue         []*uint256.Int
	actionGas           []*uint64
	actionInput         [][]byte
	actionCallType      []*string
	actionInit          [][]byte
	actionRewardType    []*string
	actionRefundAddress [][]byte
	actionType          []string
	resultGasUsed       []*uint64
	resultOutput        [][]byte
	resultCode          [][]byte
	resultAddress       [][]byte
	traceAddress        []string
	subtraces           []uint64
	transactionPosition []*uint32
	transactionHash     [][]byte
	blockNumber         []uint32
	blockHash           [][]byte
	errorMessage        []*string
}

// flatTrace is a trace with every variant field resolved to a nullable column value.
type flatTrace struct {
	from, to, input, init, refundAddress []byte
	value                                *uint256.Int
	gas                                  *uint64
	callType, rewardType                 *string
	gasUsed                              *uint64
	output, code, address                []byte
}

func flatten(trace *common.Trace) flatTrace {
	var f flatTrace
	switch trace.Action.Type {
	case common.ActionCall:
		a := trace.Action.Call
		f.from, f.to = a.From.Bytes(), a.To.Bytes()
		f.value = bigToU256(&a.Value)
		f.gas = ptr(uint64(a.Gas))
		f.input = nonNil(a.Input)
		f.callType = ptr(a.CallType)
	case common.ActionCreate:
		a := trace.Action.Create
		f.from = a.From.Bytes()
		f.value = bigToU256(&a.Value)
		f.gas = ptr(uint64(a.Gas))
		f.init = nonNil(a.Init)
	case common.ActionSuicide:
		a := trace.Action.Suicide
		f.from = a.Address.Bytes()
		f.to = a.RefundAddress.Bytes()
		f.refundAddress = a.RefundAddress.Bytes()
		f.value = bigToU256(&a.Balance)
	case common.ActionReward:
		a := trace.Action.Reward
		f.to = a.Author.Bytes()
		f.value = bigToU256(&a.Value)
		f.rewardType = ptr(a.RewardType)
	}
	if trace.Result != nil {
		if r := trace.Result.Call; r != nil {
			f.gasUsed = ptr(uint64(r.GasUsed))
			f.output = nonNil(r.Output)
		}
		if r := trace.Result.Create; r != nil {
			f.gasUsed = ptr(uint64(r.GasUsed))
			f.code = nonNil(r.Code)
			f.address = r.Address.Bytes()
		}
	}
	return f
}

func processTraces(traces []common.Trace, columns *TraceColumns, t *schema.Table) {
	for i := range traces {
		trace := &traces[i]
		f := flatten(trace)
		columns.nRows++
		store(t, "action_from", &columns.actionFrom, f.from)
		store(t, "action_to", &columns.actionTo, f.to)
		store(t, "action_value", &columns.actionValue, f.value)
		store(t, "action_gas", &columns.actionGas, f.gas)
		store(t, "action_input", &columns.actionInput, f.input)
		store(t, "action_call_type", &columns.actionCallType, f.callType)
		store(t, "action_init", &columns.actionInit, f.init)
		store(t, "action_reward_type", &columns.actionRewardType, f.rewardType)
		store(t, "action_refund_address", &columns.actionRefundAddress, f.refundAddress)
		store(t, "action_type", &columns.actionType, string(trace.Action.Type))
		store(t, "result_gas_used", &columns.resultGasUsed, f.gasUsed)
		store(t, "result_output", &columns.resultOutput, f.output)
		store(t, "result_code", &columns.resultCode, f.code)
		store(t, "result_address", &columns.resultAddress, f.address)
		store(t, "trace_address", &columns.traceAddress, trace.TraceAddressString())
		store(t, "subtraces", &columns.subtraces, trace.Subtraces)
		store(t, "transaction_position", &columns.transactionPosition, transactionPosition(trace))
		store(t, "transaction_hash", &columns.transactionHash, traceTransactionHash(trace))
		store(t, "block_number", &columns.blockNumber, uint32(trace.BlockNumber))
		store(t, "block_hash", &columns.blockHash, trace.BlockHash.Bytes())
		var errorMessage *string
		if trace.Error != "" {
			errorMessage = ptr(trace.Error)
		}
		store(t, "error", &columns.errorMessage, errorMessage)
	}
}

func (c *TraceColumns) toFrame(t *schema.Table, chainID uint64) (*dataframe.Frame, error) {
	b := newFrameBuilder(t, c.nRows)
	b.binary("action_from", c.actionFrom)
	b.binary("action_to", c.actionTo)
	b.u256s("action_value", c.actionValue)
	b.optUint64s("action_gas", c.actionGas)
	b.binary("action_input", c.actionInput)
	b.optStrings("action_call_type", c.actionCallType)
	b.binary("action_init", c.actionInit)
	b.optStrings("action_reward_type", c.actionRewardType)
	b.binary("action_refund_address", c.actionRefundAddress)
	b.strings("action_type", c.actionType)
	b.optUint64s("result_gas_used", c.resultGasUsed)
	b.binary("result_output", c.resultOutput)
	b.binary("result_code", c.resultCode)
	b.binary("result_address", c.resultAddress)
	b.strings("trace_address", c.traceAddress)
	b.uint64s("subtraces", c.subtraces)
	b.optUint32s("transaction_position", c.transactionPosition)
	b.binary("transaction_hash", c.transactionHash)
	b.uint32s("block_number", c.blockNumber)
	b.binary("block_hash", c.blockHash)
	b.optStrings("error", c.errorMessage)
	b.chainID(chainID)
	return b.build()
}

func transactionPosition(trace *common.Trace) *uint32 {
	if trace.TransactionPosition == nil {
		return nil
	}
	return ptr(uint32(*trace.TransactionPosition))
}

func traceTransactionHash(trace *common.Trace) []byte {
	if trace.TransactionHash == nil {
		return nil
	}
	return trace.TransactionHash.Bytes()
}

// filterFailedTraces drops traces that errored together with every trace
// nested below them in the same transaction.
func filterFailedTraces(traces []common.Trace) []common.Trace {
	failed := make(map[string][][]uint64)
	kept := make([]common.Trace, 0, len(traces))
	for _, trace := range traces {
		tx := traceTransactionKey(&trace)
		if trace.Error != "" {
			failed[tx] = append(failed[tx], trace.TraceAddress)
			continue
		}
		if hasFailedAncestor(failed[tx], trace.TraceAddress) {
			continue
		}
		kept = append(kept, trace)
	}
	return kept
}

func traceTransactionKey(trace *common.Trace) string {
	switch {
	case trace.TransactionHash != nil:
		return trace.TransactionHash.Hex()
	case trace.TransactionPosition != nil:
		return fmt.Sprintf("%d:%d", trace.BlockNumber, *trace.TransactionPosition)
	}
	return fmt.Sprintf("%d:-", trace.BlockNumber)
}

func hasFailedAncestor(failed [][]uint64, address []uint64) bool {
	for _, prefix := range failed {
		if len(prefix) > len(address) {
			continue
		}
		match := true
		for i := range prefix {
			if prefix[i] != address[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
