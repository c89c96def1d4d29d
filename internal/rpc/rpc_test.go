package rpc

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jsonrpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

type rpcResponder func(params []json.RawMessage) (result interface{}, errCode int, errMsg string)

type fakeNode struct {
	mu       sync.Mutex
	handlers map[string]rpcResponder
	calls    map[string][][]json.RawMessage
}

func newFakeNode(t *testing.T) (*fakeNode, *Client) {
	node := &fakeNode{
		handlers: map[string]rpcResponder{
			"eth_chainId": func([]json.RawMessage) (interface{}, int, string) { return "0x1", 0, "" },
		},
		calls: map[string][][]json.RawMessage{},
	}
	server := httptest.NewServer(http.HandlerFunc(node.serve))
	t.Cleanup(server.Close)

	client, err := InitializeWithURL(context.Background(), server.URL, 0)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return node, client
}

func (n *fakeNode) on(method string, responder rpcResponder) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers[method] = responder
}

func (n *fakeNode) paramsOf(method string) [][]json.RawMessage {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	var req jsonrpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n.mu.Lock()
	n.calls[req.Method] = append(n.calls[req.Method], req.Params)
	handler, ok := n.handlers[req.Method]
	n.mu.Unlock()

	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if !ok {
		resp["error"] = map[string]interface{}{"code": -32601, "message": "method not found"}
	} else {
		result, code, msg := handler(req.Params)
		if code != 0 {
			resp["error"] = map[string]interface{}{"code": code, "message": msg}
		} else {
			resp["result"] = result
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func TestInitializeReadsChainID(t *testing.T) {
	_, client := newFakeNode(t)
	assert.Equal(t, uint64(1), client.ChainID())
}

func TestGetBlock(t *testing.T) {
	node, client := newFakeNode(t)
	node.on("eth_getBlockByNumber", func(params []json.RawMessage) (interface{}, int, string) {
		return map[string]interface{}{
			"hash":         "0x0000000000000000000000000000000000000000000000000000000000000abc",
			"parentHash":   "0x0000000000000000000000000000000000000000000000000000000000000001",
			"miner":        "0x00000000000000000000000000000000000000aa",
			"number":       "0x10",
			"gasUsed":      "0x5208",
			"gasLimit":     "0x1c9c380",
			"timestamp":    "0x64",
			"extraData":    "0x",
			"transactions": []string{},
		}, 0, ""
	})

	block, err := client.GetBlock(context.Background(), 16)
	require.NoError(t, err)
	require.NotNil(t, block)
	assert.Equal(t, gethCommon.HexToHash("0xabc"), *block.Hash)
	assert.Equal(t, uint64(16), uint64(*block.Number))
	assert.Equal(t, uint64(21000), uint64(block.GasUsed))

	params := node.paramsOf("eth_getBlockByNumber")
	require.Len(t, params, 1)
	assert.JSONEq(t, `"0x10"`, string(params[0][0]))
	assert.JSONEq(t, `false`, string(params[0][1]))
}

func TestGetBlockNullIsNil(t *testing.T) {
	node, client := newFakeNode(t)
	node.on("eth_getBlockByNumber", func([]json.RawMessage) (interface{}, int, string) { return nil, 0, "" })

	block, err := client.GetBlock(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, block)
}

func TestTraceBlockNullIsNotFound(t *testing.T) {
	node, client := newFakeNode(t)
	node.on("trace_block", func([]json.RawMessage) (interface{}, int, string) { return nil, 0, "" })

	_, err := client.TraceBlock(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTransactionLogsMissingReceipt(t *testing.T) {
	node, client := newFakeNode(t)
	node.on("eth_getTransactionReceipt", func([]json.RawMessage) (interface{}, int, string) { return nil, 0, "" })

	_, err := client.GetTransactionLogs(context.Background(), gethCommon.HexToHash("0x1"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTraceTransactionStateDiffsFillsHash(t *testing.T) {
	node, client := newFakeNode(t)
	node.on("trace_replayTransaction", func(params []json.RawMessage) (interface{}, int, string) {
		return map[string]interface{}{
			"output":    "0x",
			"stateDiff": map[string]interface{}{},
		}, 0, ""
	})

	hash := gethCommon.HexToHash("0x42")
	diffs, err := client.TraceTransactionStateDiffs(context.Background(), hash)
	require.NoError(t, err)
	require.Len(t, diffs.Traces, 1)
	assert.Equal(t, hash, *diffs.Traces[0].TransactionHash)
	assert.Equal(t, hash, *diffs.TransactionHash)
	assert.Nil(t, diffs.BlockNumber)

	params := node.paramsOf("trace_replayTransaction")
	require.Len(t, params, 1)
	assert.JSONEq(t, `["stateDiff"]`, string(params[0][1]))
}

func TestGetLogsEncodesFilter(t *testing.T) {
	node, client := newFakeNode(t)
	node.on("eth_getLogs", func([]json.RawMessage) (interface{}, int, string) { return []interface{}{}, 0, "" })

	topic := gethCommon.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef")
	_, err := client.GetLogs(context.Background(), ethereum.FilterQuery{
		FromBlock: big.NewInt(10),
		ToBlock:   big.NewInt(10),
		Addresses: []gethCommon.Address{gethCommon.HexToAddress("0xaa")},
		Topics:    [][]gethCommon.Hash{{topic}, {}},
	})
	require.NoError(t, err)

	params := node.paramsOf("eth_getLogs")
	require.Len(t, params, 1)
	assert.JSONEq(t, `{
		"fromBlock": "0xa",
		"toBlock": "0xa",
		"address": "0x00000000000000000000000000000000000000aa",
		"topics": ["0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", null]
	}`, string(params[0][0]))
}

func TestCallExecutionError(t *testing.T) {
	node, client := newFakeNode(t)
	node.on("eth_call", func([]json.RawMessage) (interface{}, int, string) { return nil, 3, "execution reverted" })

	_, err := client.Call(context.Background(), gethCommon.HexToAddress("0xaa"), []byte{0x06, 0xfd, 0xde, 0x03}, 5)
	require.Error(t, err)
	assert.True(t, IsExecutionError(err))
}

func TestCallReturnsBytes(t *testing.T) {
	node, client := newFakeNode(t)
	node.on("eth_call", func(params []json.RawMessage) (interface{}, int, string) { return "0x0012", 0, "" })

	out, err := client.Call(context.Background(), gethCommon.HexToAddress("0xaa"), []byte{0x01}, 5)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x12}, out)

	params := node.paramsOf("eth_call")
	require.Len(t, params, 1)
	assert.JSONEq(t, `{"to": "0x00000000000000000000000000000000000000aa", "data": "0x01"}`, string(params[0][0]))
	assert.JSONEq(t, `"0x5"`, string(params[0][1]))
}

func TestTransportErrorIsNotExecutionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := InitializeWithURL(context.Background(), server.URL, 0)
	require.Error(t, err)
	assert.False(t, IsExecutionError(err))
}
