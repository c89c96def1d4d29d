package cache

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/ethereum/go-ethereum"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/internal/rpc"
)

// Fetcher memoizes the responses of an rpc.IFetcher for historical data.
// Missing blocks, transactions and receipts are never stored so they are
// fetched again once the node has them.
type Fetcher struct {
	inner rpc.IFetcher
	store *Store
}

var _ rpc.IFetcher = (*Fetcher)(nil)

func NewFetcher(inner rpc.IFetcher, store *Store) *Fetcher {
	return &Fetcher{inner: inner, store: store}
}

func notNil[T any](v *T) bool {
	return v != nil
}

func always[T any](T) bool {
	return true
}

func blockKey(n uint64) string {
	return strconv.FormatUint(n, 10)
}

func (f *Fetcher) ChainID() uint64 {
	return f.inner.ChainID()
}

func (f *Fetcher) GetBlock(ctx context.Context, blockNumber uint64) (*common.Block, error) {
	return through(f.store, f.ChainID(), "eth_getBlockByNumber", blockKey(blockNumber), func() (*common.Block, error) {
		return f.inner.GetBlock(ctx, blockNumber)
	}, notNil[common.Block])
}

func (f *Fetcher) GetBlockByHash(ctx context.Context, blockHash gethCommon.Hash) (*common.Block, error) {
	return through(f.store, f.ChainID(), "eth_getBlockByHash", blockHash.Hex(), func() (*common.Block, error) {
		return f.inner.GetBlockByHash(ctx, blockHash)
	}, notNil[common.Block])
}

// GetTransaction only stores mined transactions.
func (f *Fetcher) GetTransaction(ctx context.Context, txHash gethCommon.Hash) (*common.Transaction, error) {
	return through(f.store, f.ChainID(), "eth_getTransactionByHash", txHash.Hex(), func() (*common.Transaction, error) {
		return f.inner.GetTransaction(ctx, txHash)
	}, func(tx *common.Transaction) bool { return tx != nil && tx.BlockHash != nil })
}

func (f *Fetcher) GetTransactionReceipt(ctx context.Context, txHash gethCommon.Hash) (*common.Receipt, error) {
	return through(f.store, f.ChainID(), "eth_getTransactionReceipt", txHash.Hex(), func() (*common.Receipt, error) {
		return f.inner.GetTransactionReceipt(ctx, txHash)
	}, notNil[common.Receipt])
}

func (f *Fetcher) GetTransactionLogs(ctx context.Context, txHash gethCommon.Hash) ([]common.Log, error) {
	return through(f.store, f.ChainID(), "eth_getTransactionLogs", txHash.Hex(), func() ([]common.Log, error) {
		return f.inner.GetTransactionLogs(ctx, txHash)
	}, always[[]common.Log])
}

// GetLogs is cached only for filters pinned to a block hash or a closed,
// numbered block range.
func (f *Fetcher) GetLogs(ctx context.Context, filter ethereum.FilterQuery) ([]common.Log, error) {
	fetch := func() ([]common.Log, error) {
		return f.inner.GetLogs(ctx, filter)
	}
	if !isPinned(filter) {
		return fetch()
	}
	key, err := json.Marshal(rpc.GetLogsParams(filter))
	if err != nil {
		return fetch()
	}
	return through(f.store, f.ChainID(), "eth_getLogs", string(key), fetch, always[[]common.Log])
}

func isPinned(filter ethereum.FilterQuery) bool {
	if filter.BlockHash != nil {
		return true
	}
	return filter.FromBlock != nil && filter.ToBlock != nil && filter.FromBlock.Sign() >= 0 && filter.ToBlock.Sign() >= 0
}

func (f *Fetcher) TraceBlock(ctx context.Context, blockNumber uint64) ([]common.Trace, error) {
	return through(f.store, f.ChainID(), "trace_block", blockKey(blockNumber), func() ([]common.Trace, error) {
		return f.inner.TraceBlock(ctx, blockNumber)
	}, always[[]common.Trace])
}

func (f *Fetcher) TraceTransaction(ctx context.Context, txHash gethCommon.Hash) ([]common.Trace, error) {
	return through(f.store, f.ChainID(), "trace_transaction", txHash.Hex(), func() ([]common.Trace, error) {
		return f.inner.TraceTransaction(ctx, txHash)
	}, always[[]common.Trace])
}

func (f *Fetcher) TraceBlockStateDiffs(ctx context.Context, blockNumber uint64) (common.StateDiffs, error) {
	return through(f.store, f.ChainID(), "trace_replayBlockTransactions", blockKey(blockNumber), func() (common.StateDiffs, error) {
		return f.inner.TraceBlockStateDiffs(ctx, blockNumber)
	}, always[common.StateDiffs])
}

func (f *Fetcher) TraceTransactionStateDiffs(ctx context.Context, txHash gethCommon.Hash) (common.StateDiffs, error) {
	return through(f.store, f.ChainID(), "trace_replayTransaction", txHash.Hex(), func() (common.StateDiffs, error) {
		return f.inner.TraceTransactionStateDiffs(ctx, txHash)
	}, always[common.StateDiffs])
}

// Call caches successful calls only. Reverts are returned as errors and so
// are evaluated against the node every time.
func (f *Fetcher) Call(ctx context.Context, to gethCommon.Address, data []byte, blockNumber uint64) ([]byte, error) {
	key := to.Hex() + "/" + hexutil.Encode(data) + "/" + blockKey(blockNumber)
	output, err := through(f.store, f.ChainID(), "eth_call", key, func() (hexutil.Bytes, error) {
		return f.inner.Call(ctx, to, data, blockNumber)
	}, always[hexutil.Bytes])
	return output, err
}
