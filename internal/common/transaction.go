package common

import (
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type Transaction struct {
	Hash             gethCommon.Hash     `json:"hash"`
	Nonce            hexutil.Uint64      `json:"nonce"`
	BlockHash        *gethCommon.Hash    `json:"blockHash"`
	BlockNumber      *hexutil.Uint64     `json:"blockNumber"`
	TransactionIndex *hexutil.Uint64     `json:"transactionIndex"`
	From             gethCommon.Address  `json:"from"`
	To               *gethCommon.Address `json:"to"`
	Value            *hexutil.Big        `json:"value"`
	Gas              hexutil.Uint64      `json:"gas"`
	GasPrice         *hexutil.Big        `json:"gasPrice"`
	Input            hexutil.Bytes       `json:"input"`
	Type             hexutil.Uint64      `json:"type"`
}

type Receipt struct {
	TransactionHash   gethCommon.Hash     `json:"transactionHash"`
	TransactionIndex  hexutil.Uint64      `json:"transactionIndex"`
	BlockHash         gethCommon.Hash     `json:"blockHash"`
	BlockNumber       hexutil.Uint64      `json:"blockNumber"`
	From              gethCommon.Address  `json:"from"`
	To                *gethCommon.Address `json:"to"`
	ContractAddress   *gethCommon.Address `json:"contractAddress"`
	GasUsed           hexutil.Uint64      `json:"gasUsed"`
	CumulativeGasUsed hexutil.Uint64      `json:"cumulativeGasUsed"`
	EffectiveGasPrice *hexutil.Big        `json:"effectiveGasPrice"`
	Status            *hexutil.Uint64     `json:"status"`
	Logs              []Log               `json:"logs"`
}
