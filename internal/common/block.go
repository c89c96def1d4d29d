package common

import (
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Block is a block header as returned by eth_getBlockByNumber with
// transaction hashes only. Hash, Author and Number are nil for pending blocks.
type Block struct {
	Hash             *gethCommon.Hash    `json:"hash"`
	ParentHash       gethCommon.Hash     `json:"parentHash"`
	Author           *gethCommon.Address `json:"miner"`
	StateRoot        gethCommon.Hash     `json:"stateRoot"`
	TransactionsRoot gethCommon.Hash     `json:"transactionsRoot"`
	ReceiptsRoot     gethCommon.Hash     `json:"receiptsRoot"`
	Number           *hexutil.Uint64     `json:"number"`
	GasUsed          hexutil.Uint64      `json:"gasUsed"`
	GasLimit         hexutil.Uint64      `json:"gasLimit"`
	ExtraData        hexutil.Bytes       `json:"extraData"`
	LogsBloom        *hexutil.Bytes      `json:"logsBloom"`
	Timestamp        hexutil.Uint64      `json:"timestamp"`
	Difficulty       *hexutil.Big        `json:"difficulty"`
	TotalDifficulty  *hexutil.Big        `json:"totalDifficulty"`
	Size             *hexutil.Uint64     `json:"size"`
	BaseFeePerGas    *hexutil.Big        `json:"baseFeePerGas"`
	Transactions     []gethCommon.Hash   `json:"transactions"`
}
