package rpc

import (
	"math/big"

	"github.com/ethereum/go-ethereum"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var stateDiffTraceTypes = []string{"stateDiff"}

func GetBlockParams(blockNum uint64) []interface{} {
	return []interface{}{hexutil.EncodeUint64(blockNum), false}
}

func GetBlockByHashParams(blockHash gethCommon.Hash) []interface{} {
	return []interface{}{blockHash, false}
}

func GetTransactionParams(txHash gethCommon.Hash) []interface{} {
	return []interface{}{txHash}
}

func TraceBlockParams(blockNum uint64) []interface{} {
	return []interface{}{hexutil.EncodeUint64(blockNum)}
}

func TraceTransactionParams(txHash gethCommon.Hash) []interface{} {
	return []interface{}{txHash}
}

func TraceBlockStateDiffsParams(blockNum uint64) []interface{} {
	return []interface{}{hexutil.EncodeUint64(blockNum), stateDiffTraceTypes}
}

func TraceTransactionStateDiffsParams(txHash gethCommon.Hash) []interface{} {
	return []interface{}{txHash, stateDiffTraceTypes}
}

func CallParams(to gethCommon.Address, data []byte, blockNum uint64) []interface{} {
	return []interface{}{
		map[string]interface{}{
			"to":   to,
			"data": hexutil.Bytes(data),
		},
		hexutil.EncodeUint64(blockNum),
	}
}

// GetLogsParams encodes a filter query the way eth_getLogs expects it.
// BlockHash takes precedence over the FromBlock/ToBlock range.
func GetLogsParams(q ethereum.FilterQuery) []interface{} {
	arg := map[string]interface{}{}
	if len(q.Addresses) == 1 {
		arg["address"] = q.Addresses[0]
	} else if len(q.Addresses) > 1 {
		arg["address"] = q.Addresses
	}
	if len(q.Topics) > 0 {
		arg["topics"] = encodeTopics(q.Topics)
	}
	if q.BlockHash != nil {
		arg["blockHash"] = *q.BlockHash
	} else {
		if q.FromBlock != nil {
			arg["fromBlock"] = encodeBlockNumber(q.FromBlock)
		}
		if q.ToBlock != nil {
			arg["toBlock"] = encodeBlockNumber(q.ToBlock)
		}
	}
	return []interface{}{arg}
}

// An empty topic position matches anything and is sent as null.
func encodeTopics(topics [][]gethCommon.Hash) []interface{} {
	encoded := make([]interface{}, len(topics))
	for i, position := range topics {
		switch len(position) {
		case 0:
			encoded[i] = nil
		case 1:
			encoded[i] = position[0]
		default:
			encoded[i] = position
		}
	}
	return encoded
}

func encodeBlockNumber(number *big.Int) string {
	if number.Sign() < 0 {
		return "latest"
	}
	return hexutil.EncodeBig(number)
}
