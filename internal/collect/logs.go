package collect

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/rpc"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

var logsKind = &kind[[]common.Log, LogColumns, *LogColumns]{
	datatype: schema.Logs,
	byBlock: &Stage[[]common.Log, LogColumns]{
		Dims:         []ChunkDim{DimBlockNumber},
		OptionalDims: []ChunkDim{DimAddress},
		Extract:      extractLogsByBlock,
		Transform:    transformLogs,
	},
	byTransaction: &Stage[[]common.Log, LogColumns]{
		Dims:      []ChunkDim{DimTransactionHash},
		Extract:   extractTransactionLogs,
		Transform: transformLogs,
	},
}

func extractLogsByBlock(ctx context.Context, req Request, fetcher rpc.IFetcher, _ *schema.Registry) ([]common.Log, error) {
	filter, err := req.LogFilter()
	if err != nil {
		return nil, err
	}
	return fetcher.GetLogs(ctx, filter)
}

func extractTransactionLogs(ctx context.Context, req Request, fetcher rpc.IFetcher, _ *schema.Registry) ([]common.Log, error) {
	txHash, err := req.TransactionHash()
	if err != nil {
		return nil, err
	}
	return fetcher.GetTransactionLogs(ctx, txHash)
}

func transformLogs(logs []common.Log, columns *LogColumns, schemas *schema.Registry) error {
	t, err := tableFor(schemas, schema.Logs)
	if err != nil {
		return err
	}
	processLogs(logs, columns, t)
	return nil
}

type LogColumns struct {
	nRows            int
	blockNumber      []uint32
	transactionIndex []uint32
	logIndex         []uint32
	transactionHash  [][]byte
	address          [][]byte
	topic0           [][]byte
	topic1           [][]byte
	topic2           [][]byte
	topic3           [][]byte
	data             [][]byte
	// decoded event arguments keyed by argument name, one value per row
	eventCols map[string][]interface{}
}

// processLogs appends every mined log. When the table carries a log decoder the
// accepted logs are decoded into event argument columns as well.
func processLogs(logs []common.Log, columns *LogColumns, t *schema.Table) {
	accepted := make([]common.Log, 0, len(logs))
	for _, l := range logs {
		if !l.IsMined() {
			continue
		}
		accepted = append(accepted, l)
		columns.nRows++
		store(t, "block_number", &columns.blockNumber, uint32(*l.BlockNumber))
		store(t, "transaction_index", &columns.transactionIndex, uint32(*l.TransactionIndex))
		store(t, "log_index", &columns.logIndex, uint32(*l.LogIndex))
		store(t, "transaction_hash", &columns.transactionHash, l.TransactionHash.Bytes())
		store(t, "address", &columns.address, l.Address.Bytes())
		store(t, "topic0", &columns.topic0, topicBytes(&l, 0))
		store(t, "topic1", &columns.topic1, topicBytes(&l, 1))
		store(t, "topic2", &columns.topic2, topicBytes(&l, 2))
		store(t, "topic3", &columns.topic3, topicBytes(&l, 3))
		store(t, "data", &columns.data, nonNil(l.Data))
	}

	if t.LogDecoder == nil {
		return
	}
	if columns.eventCols == nil {
		columns.eventCols = make(map[string][]interface{})
	}
	for name, values := range t.LogDecoder.ParseLogs(accepted) {
		columns.eventCols[name] = append(columns.eventCols[name], values...)
	}
}

func topicBytes(l *common.Log, i int) []byte {
	topic := l.Topic(i)
	if topic == nil {
		return nil
	}
	return topic.Bytes()
}

func (c *LogColumns) toFrame(t *schema.Table, chainID uint64) (*dataframe.Frame, error) {
	b := newFrameBuilder(t, c.nRows)
	b.uint32s("block_number", c.blockNumber)
	b.uint32s("transaction_index", c.transactionIndex)
	b.uint32s("log_index", c.logIndex)
	b.binary("transaction_hash", c.transactionHash)
	b.binary("address", c.address)
	b.binary("topic0", c.topic0)
	b.binary("topic1", c.topic1)
	b.binary("topic2", c.topic2)
	b.binary("topic3", c.topic3)
	b.binary("data", c.data)
	b.chainID(chainID)
	frame, err := b.build()
	if err != nil || t.LogDecoder == nil {
		return frame, err
	}

	for _, name := range t.LogDecoder.ArgNames() {
		values := c.eventCols[name]
		if values == nil {
			values = make([]interface{}, c.nRows)
		}
		column, err := eventColumn(schema.EventColumnPrefix+name, values, t.Encoding(schema.EventColumnPrefix+name))
		if err == nil {
			err = frame.AddColumn(column)
			column.Values.Release()
		}
		if err != nil {
			frame.Release()
			return nil, err
		}
	}
	return frame, nil
}

// eventColumn picks the column kind from the first non-null decoded value.
func eventColumn(name string, values []interface{}, encoding schema.ColumnEncoding) (dataframe.Column, error) {
	columnKind := eventKind(values)
	if columnKind == dataframe.KindBinary && encoding == schema.EncodingHex {
		encoded := make([]interface{}, len(values))
		for i, v := range values {
			if v != nil {
				encoded[i] = hexutil.Encode(v.([]byte))
			}
		}
		values, columnKind = encoded, dataframe.KindString
	}
	arr, err := dataframe.BuildArray(columnKind, values)
	if err != nil {
		return dataframe.Column{}, fmt.Errorf("event column %s: %w", name, err)
	}
	return dataframe.Column{Name: name, Values: arr}, nil
}

func eventKind(values []interface{}) dataframe.Kind {
	for _, v := range values {
		switch v.(type) {
		case nil:
			continue
		case uint64:
			return dataframe.KindUInt64
		case int64:
			return dataframe.KindInt64
		case bool:
			return dataframe.KindBool
		case []byte:
			return dataframe.KindBinary
		}
		return dataframe.KindString
	}
	return dataframe.KindString
}
