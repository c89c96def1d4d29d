package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethRpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"
	config "github.com/thirdweb-dev/freeze/configs"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/internal/metrics"
)

// ErrNotFound is returned by list-valued methods when the node answers null.
var ErrNotFound = errors.New("not found")

// IFetcher is the set of node capabilities the collectors depend on.
// Single-object getters return (nil, nil) when the node has no such object.
type IFetcher interface {
	GetBlock(ctx context.Context, blockNumber uint64) (*common.Block, error)
	GetBlockByHash(ctx context.Context, blockHash gethCommon.Hash) (*common.Block, error)
	GetTransaction(ctx context.Context, txHash gethCommon.Hash) (*common.Transaction, error)
	GetTransactionReceipt(ctx context.Context, txHash gethCommon.Hash) (*common.Receipt, error)
	GetTransactionLogs(ctx context.Context, txHash gethCommon.Hash) ([]common.Log, error)
	GetLogs(ctx context.Context, filter ethereum.FilterQuery) ([]common.Log, error)
	TraceBlock(ctx context.Context, blockNumber uint64) ([]common.Trace, error)
	TraceTransaction(ctx context.Context, txHash gethCommon.Hash) ([]common.Trace, error)
	TraceBlockStateDiffs(ctx context.Context, blockNumber uint64) (common.StateDiffs, error)
	TraceTransactionStateDiffs(ctx context.Context, txHash gethCommon.Hash) (common.StateDiffs, error)
	Call(ctx context.Context, to gethCommon.Address, data []byte, blockNumber uint64) ([]byte, error)
	ChainID() uint64
}

type Client struct {
	RPCClient *gethRpc.Client
	url       string
	chainID   uint64
	timeout   time.Duration
}

func Initialize() (*Client, error) {
	rpcUrl := config.Cfg.RPC.URL
	if rpcUrl == "" {
		return nil, fmt.Errorf("RPC_URL environment variable is not set")
	}
	timeout := time.Duration(config.Cfg.RPC.Timeout) * time.Millisecond
	return InitializeWithURL(context.Background(), rpcUrl, timeout)
}

func InitializeWithURL(ctx context.Context, url string, timeout time.Duration) (*Client, error) {
	log.Debug().Str("url", url).Msg("Initializing RPC")
	rpcClient, err := gethRpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	rpc := &Client{
		RPCClient: rpcClient,
		url:       url,
		timeout:   timeout,
	}
	if err := rpc.setChainID(ctx); err != nil {
		rpcClient.Close()
		return nil, err
	}
	return rpc, nil
}

func (rpc *Client) ChainID() uint64 {
	return rpc.chainID
}

func (rpc *Client) GetURL() string {
	return rpc.url
}

func (rpc *Client) Close() {
	rpc.RPCClient.Close()
}

func (rpc *Client) setChainID(ctx context.Context) error {
	var chainID hexutil.Uint64
	if err := rpc.call(ctx, &chainID, "eth_chainId"); err != nil {
		return fmt.Errorf("failed to get chain ID: %w", err)
	}
	rpc.chainID = uint64(chainID)
	return nil
}

func (rpc *Client) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	if rpc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rpc.timeout)
		defer cancel()
	}
	start := time.Now()
	err := rpc.RPCClient.CallContext(ctx, result, method, args...)
	metrics.RPCRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RPCRequestErrors.WithLabelValues(method).Inc()
		return fmt.Errorf("%s failed: %w", method, err)
	}
	return nil
}

// callOptional decodes a response that may be null into a *T; null yields nil.
func callOptional[T any](ctx context.Context, rpc *Client, method string, args ...interface{}) (*T, error) {
	var raw json.RawMessage
	if err := rpc.call(ctx, &raw, method, args...); err != nil {
		return nil, err
	}
	if isNull(raw) {
		return nil, nil
	}
	result := new(T)
	if err := json.Unmarshal(raw, result); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	return result, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func (rpc *Client) GetBlock(ctx context.Context, blockNumber uint64) (*common.Block, error) {
	return callOptional[common.Block](ctx, rpc, "eth_getBlockByNumber", GetBlockParams(blockNumber)...)
}

func (rpc *Client) GetBlockByHash(ctx context.Context, blockHash gethCommon.Hash) (*common.Block, error) {
	return callOptional[common.Block](ctx, rpc, "eth_getBlockByHash", GetBlockByHashParams(blockHash)...)
}

func (rpc *Client) GetTransaction(ctx context.Context, txHash gethCommon.Hash) (*common.Transaction, error) {
	return callOptional[common.Transaction](ctx, rpc, "eth_getTransactionByHash", GetTransactionParams(txHash)...)
}

func (rpc *Client) GetTransactionReceipt(ctx context.Context, txHash gethCommon.Hash) (*common.Receipt, error) {
	return callOptional[common.Receipt](ctx, rpc, "eth_getTransactionReceipt", GetTransactionParams(txHash)...)
}

func (rpc *Client) GetTransactionLogs(ctx context.Context, txHash gethCommon.Hash) ([]common.Log, error) {
	receipt, err := rpc.GetTransactionReceipt(ctx, txHash)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, ErrNotFound
	}
	return receipt.Logs, nil
}

func (rpc *Client) GetLogs(ctx context.Context, filter ethereum.FilterQuery) ([]common.Log, error) {
	var logs []common.Log
	if err := rpc.call(ctx, &logs, "eth_getLogs", GetLogsParams(filter)...); err != nil {
		return nil, err
	}
	return logs, nil
}

func (rpc *Client) TraceBlock(ctx context.Context, blockNumber uint64) ([]common.Trace, error) {
	traces, err := callOptional[[]common.Trace](ctx, rpc, "trace_block", TraceBlockParams(blockNumber)...)
	if err != nil {
		return nil, err
	}
	if traces == nil {
		return nil, ErrNotFound
	}
	return *traces, nil
}

func (rpc *Client) TraceTransaction(ctx context.Context, txHash gethCommon.Hash) ([]common.Trace, error) {
	traces, err := callOptional[[]common.Trace](ctx, rpc, "trace_transaction", TraceTransactionParams(txHash)...)
	if err != nil {
		return nil, err
	}
	if traces == nil {
		return nil, ErrNotFound
	}
	return *traces, nil
}

func (rpc *Client) TraceBlockStateDiffs(ctx context.Context, blockNumber uint64) (common.StateDiffs, error) {
	traces, err := callOptional[[]common.BlockTrace](ctx, rpc, "trace_replayBlockTransactions", TraceBlockStateDiffsParams(blockNumber)...)
	if err != nil {
		return common.StateDiffs{}, err
	}
	if traces == nil {
		return common.StateDiffs{}, ErrNotFound
	}
	return common.StateDiffs{BlockNumber: &blockNumber, Traces: *traces}, nil
}

func (rpc *Client) TraceTransactionStateDiffs(ctx context.Context, txHash gethCommon.Hash) (common.StateDiffs, error) {
	trace, err := callOptional[common.BlockTrace](ctx, rpc, "trace_replayTransaction", TraceTransactionStateDiffsParams(txHash)...)
	if err != nil {
		return common.StateDiffs{}, err
	}
	if trace == nil {
		return common.StateDiffs{}, ErrNotFound
	}
	if trace.TransactionHash == nil {
		trace.TransactionHash = &txHash
	}
	return common.StateDiffs{TransactionHash: &txHash, Traces: []common.BlockTrace{*trace}}, nil
}

func (rpc *Client) Call(ctx context.Context, to gethCommon.Address, data []byte, blockNumber uint64) ([]byte, error) {
	var result hexutil.Bytes
	if err := rpc.call(ctx, &result, "eth_call", CallParams(to, data, blockNumber)...); err != nil {
		return nil, err
	}
	return result, nil
}

// JSON-RPC error codes nodes use for failed or reverted EVM execution.
var executionErrorCodes = map[int]struct{}{
	3:      {},
	-32000: {},
	-32015: {},
}

// IsExecutionError reports whether err is the node rejecting the call itself,
// as opposed to a transport failure that may succeed when retried.
func IsExecutionError(err error) bool {
	var rpcErr gethRpc.Error
	if !errors.As(err, &rpcErr) {
		return false
	}
	_, ok := executionErrorCodes[rpcErr.ErrorCode()]
	return ok
}
