package collect

import (
	"context"
	"fmt"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/rpc"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

var erc721TransfersKind = &kind[[]common.Log, Erc721TransferColumns, *Erc721TransferColumns]{
	datatype: schema.Erc721Transfers,
	byBlock: &Stage[[]common.Log, Erc721TransferColumns]{
		Dims:         []ChunkDim{DimBlockNumber},
		OptionalDims: []ChunkDim{DimAddress},
		Extract:      extractErc721TransfersByBlock,
		Transform:    transformErc721Transfers,
	},
	byTransaction: &Stage[[]common.Log, Erc721TransferColumns]{
		Dims:      []ChunkDim{DimTransactionHash},
		Extract:   extractErc721TransfersByTransaction,
		Transform: transformErc721Transfers,
	},
}

// TransferTopic is topic0 of Transfer(address,address,uint256).
var TransferTopic = eventTopic("Transfer(address indexed from, address indexed to, uint256 tokenId)")

func eventTopic(signature string) gethCommon.Hash {
	event, err := common.ConstructEventABI(signature)
	if err != nil {
		panic(fmt.Sprintf("invalid event signature %s: %v", signature, err))
	}
	return event.ID
}

func extractErc721TransfersByBlock(ctx context.Context, req Request, fetcher rpc.IFetcher, _ *schema.Registry) ([]common.Log, error) {
	filter, err := req.LogFilter()
	if err != nil {
		return nil, err
	}
	filter.Topics = [][]gethCommon.Hash{{TransferTopic}}
	logs, err := fetcher.GetLogs(ctx, filter)
	if err != nil {
		return nil, err
	}
	return filterLogs(logs, isTransferShaped), nil
}

func extractErc721TransfersByTransaction(ctx context.Context, req Request, fetcher rpc.IFetcher, _ *schema.Registry) ([]common.Log, error) {
	txHash, err := req.TransactionHash()
	if err != nil {
		return nil, err
	}
	logs, err := fetcher.GetTransactionLogs(ctx, txHash)
	if err != nil {
		return nil, err
	}
	return filterLogs(logs, func(l *common.Log) bool {
		return isTransferShaped(l) && l.Topics[0] == TransferTopic
	}), nil
}

// isTransferShaped reports whether a log has exactly three topics and a single
// 32-byte data word.
func isTransferShaped(l *common.Log) bool {
	return len(l.Topics) == 3 && len(l.Data) == 32
}

func filterLogs(logs []common.Log, keep func(*common.Log) bool) []common.Log {
	out := make([]common.Log, 0, len(logs))
	for i := range logs {
		if keep(&logs[i]) {
			out = append(out, logs[i])
		}
	}
	return out
}

func transformErc721Transfers(logs []common.Log, columns *Erc721TransferColumns, schemas *schema.Registry) error {
	t, err := tableFor(schemas, schema.Erc721Transfers)
	if err != nil {
		return err
	}
	processErc721Transfers(logs, columns, t)
	return nil
}

type Erc721TransferColumns struct {
	nRows            int
	blockNumber      []uint32
	transactionIndex []uint32
	logIndex         []uint32
	transactionHash  [][]byte
	erc721           [][]byte
	fromAddress      [][]byte
	toAddress        [][]byte
	tokenID          []*uint256.Int
}

// processErc721Transfers appends every mined, transfer shaped log.
func processErc721Transfers(logs []common.Log, columns *Erc721TransferColumns, t *schema.Table) {
	for _, l := range logs {
		if !l.IsMined() || !isTransferShaped(&l) {
			continue
		}
		columns.nRows++
		store(t, "block_number", &columns.blockNumber, uint32(*l.BlockNumber))
		store(t, "transaction_index", &columns.transactionIndex, uint32(*l.TransactionIndex))
		store(t, "log_index", &columns.logIndex, uint32(*l.LogIndex))
		store(t, "transaction_hash", &columns.transactionHash, l.TransactionHash.Bytes())
		store(t, "erc721", &columns.erc721, l.Address.Bytes())
		store(t, "from_address", &columns.fromAddress, l.Topics[1].Bytes()[12:])
		store(t, "to_address", &columns.toAddress, l.Topics[2].Bytes()[12:])
		store(t, "token_id", &columns.tokenID, new(uint256.Int).SetBytes32(l.Data))
	}
}

func (c *Erc721TransferColumns) toFrame(t *schema.Table, chainID uint64) (*dataframe.Frame, error) {
	b := newFrameBuilder(t, c.nRows)
	b.uint32s("block_number", c.blockNumber)
	b.uint32s("transaction_index", c.transactionIndex)
	b.uint32s("log_index", c.logIndex)
	b.binary("transaction_hash", c.transactionHash)
	b.binary("erc721", c.erc721)
	b.binary("from_address", c.fromAddress)
	b.binary("to_address", c.toAddress)
	b.u256s("token_id", c.tokenID)
	b.chainID(chainID)
	return b.build()
}
