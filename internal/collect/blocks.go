package collect

import (
	"context"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/rpc"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

var blocksKind = &kind[*common.Block, BlockColumns, *BlockColumns]{
	datatype: schema.Blocks,
	byBlock: &Stage[*common.Block, BlockColumns]{
		Dims:      []ChunkDim{DimBlockNumber},
		Extract:   extractBlockByNumber,
		Transform: transformBlock,
	},
	byTransaction: &Stage[*common.Block, BlockColumns]{
		Dims:      []ChunkDim{DimTransactionHash},
		Extract:   extractBlockByTransaction,
		Transform: transformBlock,
	},
}

func extractBlockByNumber(ctx context.Context, req Request, fetcher rpc.IFetcher, _ *schema.Registry) (*common.Block, error) {
	blockNumber, err := req.BlockNumber()
	if err != nil {
		return nil, err
	}
	block, err := fetcher.GetBlock(ctx, blockNumber)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, notFound(schema.Blocks, "block %d not found", blockNumber)
	}
	return block, nil
}

func extractBlockByTransaction(ctx context.Context, req Request, fetcher rpc.IFetcher, _ *schema.Registry) (*common.Block, error) {
	txHash, err := req.TransactionHash()
	if err != nil {
		return nil, err
	}
	tx, err := fetcher.GetTransaction(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, notFound(schema.Blocks, "transaction %s not found", txHash.Hex())
	}
	if tx.BlockHash == nil {
		return nil, notFound(schema.Blocks, "transaction %s is not mined", txHash.Hex())
	}
	block, err := fetcher.GetBlockByHash(ctx, *tx.BlockHash)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, notFound(schema.Blocks, "block %s not found", tx.BlockHash.Hex())
	}
	return block, nil
}

func transformBlock(block *common.Block, columns *BlockColumns, schemas *schema.Registry) error {
	t, err := tableFor(schemas, schema.Blocks)
	if err != nil {
		return err
	}
	return processBlock(block, columns, t)
}

type BlockColumns struct {
	nRows            int
	blockNumber      []*uint32
	hash             [][]byte
	parentHash       [][]byte
	author           [][]byte
	stateRoot        [][]byte
	transactionsRoot [][]byte
	receiptsRoot     [][]byte
	gasUsed          []uint64
	gasLimit         []uint64
	extraData        [][]byte
	logsBloom        [][]byte
	timestamp        []uint32
	totalDifficulty  []*uint256.Int
	size             []*uint32
	baseFeePerGas    []*uint64
}

// processBlock appends one block. A block without hash or author comes from a
// pending or incomplete response and is rejected before any column is touched.
func processBlock(block *common.Block, columns *BlockColumns, t *schema.Table) error {
	if block.Hash == nil {
		return malformed(schema.Blocks, "block hash required")
	}
	if block.Author == nil {
		return malformed(schema.Blocks, "block author required")
	}

	columns.nRows++
	store(t, "block_number", &columns.blockNumber, optUint32(block.Number))
	store(t, "hash", &columns.hash, block.Hash.Bytes())
	store(t, "parent_hash", &columns.parentHash, block.ParentHash.Bytes())
	store(t, "author", &columns.author, block.Author.Bytes())
	store(t, "state_root", &columns.stateRoot, block.StateRoot.Bytes())
	store(t, "transactions_root", &columns.transactionsRoot, block.TransactionsRoot.Bytes())
	store(t, "receipts_root", &columns.receiptsRoot, block.ReceiptsRoot.Bytes())
	store(t, "gas_used", &columns.gasUsed, uint64(block.GasUsed))
	store(t, "gas_limit", &columns.gasLimit, uint64(block.GasLimit))
	store(t, "extra_data", &columns.extraData, nonNil(block.ExtraData))
	var logsBloom []byte
	if block.LogsBloom != nil {
		logsBloom = nonNil(*block.LogsBloom)
	}
	store(t, "logs_bloom", &columns.logsBloom, logsBloom)
	store(t, "timestamp", &columns.timestamp, uint32(block.Timestamp))
	store(t, "total_difficulty", &columns.totalDifficulty, bigToU256(block.TotalDifficulty))
	store(t, "size", &columns.size, optUint32(block.Size))
	var baseFee *uint64
	if block.BaseFeePerGas != nil {
		baseFee = ptr(block.BaseFeePerGas.ToInt().Uint64())
	}
	store(t, "base_fee_per_gas", &columns.baseFeePerGas, baseFee)
	return nil
}

func (c *BlockColumns) toFrame(t *schema.Table, chainID uint64) (*dataframe.Frame, error) {
	b := newFrameBuilder(t, c.nRows)
	b.optUint32s("block_number", c.blockNumber)
	b.binary("hash", c.hash)
	b.binary("parent_hash", c.parentHash)
	b.binary("author", c.author)
	b.binary("state_root", c.stateRoot)
	b.binary("transactions_root", c.transactionsRoot)
	b.binary("receipts_root", c.receiptsRoot)
	b.uint64s("gas_used", c.gasUsed)
	b.uint64s("gas_limit", c.gasLimit)
	b.binary("extra_data", c.extraData)
	b.binary("logs_bloom", c.logsBloom)
	b.uint32s("timestamp", c.timestamp)
	b.u256s("total_difficulty", c.totalDifficulty)
	b.optUint32s("size", c.size)
	b.optUint64s("base_fee_per_gas", c.baseFeePerGas)
	b.chainID(chainID)
	return b.build()
}

func optUint32(v *hexutil.Uint64) *uint32 {
	if v == nil {
		return nil
	}
	return ptr(uint32(*v))
}

func bigToU256(v *hexutil.Big) *uint256.Int {
	if v == nil {
		return nil
	}
	value, _ := uint256.FromBig(v.ToInt())
	return value
}

// nonNil keeps empty byte strings distinct from nulls.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
