package common

import (
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Log is an event log. Position fields are nil for logs of pending blocks.
type Log struct {
	Address          gethCommon.Address `json:"address"`
	Topics           []gethCommon.Hash  `json:"topics"`
	Data             hexutil.Bytes      `json:"data"`
	BlockHash        *gethCommon.Hash   `json:"blockHash"`
	BlockNumber      *hexutil.Uint64    `json:"blockNumber"`
	TransactionHash  *gethCommon.Hash   `json:"transactionHash"`
	TransactionIndex *hexutil.Uint64    `json:"transactionIndex"`
	LogIndex         *hexutil.Uint64    `json:"logIndex"`
	Removed          bool               `json:"removed"`
}

// IsMined reports whether every positional field of the log is set.
func (l *Log) IsMined() bool {
	return l.BlockNumber != nil && l.TransactionHash != nil && l.TransactionIndex != nil && l.LogIndex != nil
}

// Topic returns the i-th topic, or nil when the log has fewer topics.
func (l *Log) Topic(i int) *gethCommon.Hash {
	if i < 0 || i >= len(l.Topics) {
		return nil
	}
	topic := l.Topics[i]
	return &topic
}
