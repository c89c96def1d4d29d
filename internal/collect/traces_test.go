package collect

import (
	"context"
	"math/big"
	"testing"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/internal/schema"
	"github.com/thirdweb-dev/freeze/test/mocks"
)

var (
	alice   = gethCommon.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob     = gethCommon.HexToAddress("0x0000000000000000000000000000000000000b0b")
	factory = gethCommon.HexToAddress("0x00000000000000000000000000000000000fac70")
	created = gethCommon.HexToAddress("0x0000000000000000000000000000000000c0ffee")
	txA     = gethCommon.HexToHash("0xaaaa")
	txB     = gethCommon.HexToHash("0xbbbb")
)

func callTrace(tx gethCommon.Hash, from, to gethCommon.Address, value int64, address ...uint64) common.Trace {
	return common.Trace{
		Action: common.Action{Type: common.ActionCall, Call: &common.CallAction{
			From: from, To: to, Value: hexutil.Big(*big.NewInt(value)), CallType: "call",
		}},
		Result:          &common.TraceResult{Call: &common.CallResult{GasUsed: 21000}},
		TraceAddress:    address,
		TransactionHash: &tx,
		BlockNumber:     100,
	}
}

func createTrace(tx gethCommon.Hash, from, contract gethCommon.Address, address ...uint64) common.Trace {
	return common.Trace{
		Action: common.Action{Type: common.ActionCreate, Create: &common.CreateAction{
			From: from, Value: hexutil.Big(*big.NewInt(0)), Init: []byte{0x60, 0x80},
		}},
		Result: &common.TraceResult{Create: &common.CreateResult{
			Address: contract, Code: []byte{0x60, 0x00},
		}},
		TraceAddress:    address,
		TransactionHash: &tx,
		BlockNumber:     100,
	}
}

func TestFilterFailedTraces(t *testing.T) {
	failed := callTrace(txA, alice, bob, 0, 0)
	failed.Error = "Reverted"
	traces := []common.Trace{
		callTrace(txA, alice, bob, 0),
		failed,
		callTrace(txA, bob, alice, 0, 0, 0),
		callTrace(txA, bob, alice, 0, 0, 1, 2),
		callTrace(txA, bob, alice, 0, 1),
		callTrace(txB, bob, alice, 0, 0, 0),
	}

	kept := filterFailedTraces(traces)
	require.Len(t, kept, 3)
	assert.Empty(t, kept[0].TraceAddress)
	assert.Equal(t, []uint64{1}, kept[1].TraceAddress)
	assert.Equal(t, txB, *kept[2].TransactionHash)
}

func TestProcessTraces(t *testing.T) {
	table := testTable(t, schema.Traces)
	reward := common.Trace{
		Action:      common.Action{Type: common.ActionReward, Reward: &common.RewardAction{Author: alice, Value: hexutil.Big(*big.NewInt(2)), RewardType: "block"}},
		BlockNumber: 100,
	}
	traces := []common.Trace{callTrace(txA, alice, bob, 5), createTrace(txA, alice, created, 0), reward}

	columns := &TraceColumns{}
	processTraces(traces, columns, table)
	frame, err := columns.toFrame(table, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, frame.Height())

	assert.Equal(t, []interface{}{"call", "create", "reward"}, columnValues(t, frame, "action_type"))
	assert.Equal(t, []interface{}{"", "0", ""}, columnValues(t, frame, "trace_address"))
	assert.Equal(t, []interface{}{nil, created.Bytes(), nil}, columnValues(t, frame, "result_address"))
	assert.Equal(t, []interface{}{"call", nil, nil}, columnValues(t, frame, "action_call_type"))
	assert.Equal(t, []interface{}{nil, nil, nil}, columnValues(t, frame, "error"))
	assert.Equal(t, []interface{}{uint64(1), uint64(1), uint64(1)}, columnValues(t, frame, "chain_id"))
}

func TestContractsDeployerTracking(t *testing.T) {
	table := testTable(t, schema.Contracts)
	failed := createTrace(txA, factory, gethCommon.HexToAddress("0xdead"), 1)
	failed.Error = "out of gas"
	traces := []common.Trace{
		// alice calls a factory which deploys a contract
		callTrace(txA, alice, factory, 0),
		createTrace(txA, factory, created, 0),
		failed,
		createTrace(txA, factory, gethCommon.HexToAddress("0xbeef"), 1, 0),
		// bob deploys directly
		createTrace(txB, bob, gethCommon.HexToAddress("0xcafe")),
	}

	columns := &ContractColumns{}
	processContracts(traces, columns, table)
	frame, err := columns.toFrame(table, 1)
	require.NoError(t, err)
	require.Equal(t, 2, frame.Height())

	assert.Equal(t, []interface{}{alice.Bytes(), bob.Bytes()}, columnValues(t, frame, "deployer"))
	assert.Equal(t, []interface{}{factory.Bytes(), bob.Bytes()}, columnValues(t, frame, "factory"))
	assert.Equal(t, []interface{}{uint32(0), uint32(1)}, columnValues(t, frame, "create_index"))
	assert.Equal(t, []interface{}{created.Bytes(), gethCommon.HexToAddress("0xcafe").Bytes()}, columnValues(t, frame, "contract_address"))
	codeHash := crypto.Keccak256([]byte{0x60, 0x00})
	assert.Equal(t, []interface{}{codeHash, codeHash}, columnValues(t, frame, "code_hash"))
	initHash := crypto.Keccak256([]byte{0x60, 0x80})
	assert.Equal(t, []interface{}{initHash, initHash}, columnValues(t, frame, "init_code_hash"))
}

func TestContractsNestedCreatesShareRootDeployer(t *testing.T) {
	table := testTable(t, schema.Contracts)
	grandchild := gethCommon.HexToAddress("0xbeef")
	traces := []common.Trace{
		callTrace(txA, alice, factory, 0),
		createTrace(txA, factory, created, 0),
		createTrace(txA, created, grandchild, 0, 0),
	}

	columns := &ContractColumns{}
	processContracts(traces, columns, table)
	frame, err := columns.toFrame(table, 1)
	require.NoError(t, err)
	require.Equal(t, 2, frame.Height())

	assert.Equal(t, []interface{}{alice.Bytes(), alice.Bytes()}, columnValues(t, frame, "deployer"))
	assert.Equal(t, []interface{}{factory.Bytes(), created.Bytes()}, columnValues(t, frame, "factory"))
	assert.Equal(t, []interface{}{created.Bytes(), grandchild.Bytes()}, columnValues(t, frame, "contract_address"))
	assert.Equal(t, []interface{}{uint32(0), uint32(1)}, columnValues(t, frame, "create_index"))
}

func TestNativeTransfersOneRowPerTrace(t *testing.T) {
	table := testTable(t, schema.NativeTransfers)
	suicide := common.Trace{
		Action:       common.Action{Type: common.ActionSuicide, Suicide: &common.SuicideAction{Address: created, RefundAddress: bob, Balance: hexutil.Big(*big.NewInt(7))}},
		TraceAddress: []uint64{1},
		BlockNumber:  100,
	}
	reward := common.Trace{
		Action:      common.Action{Type: common.ActionReward, Reward: &common.RewardAction{Author: alice, Value: hexutil.Big(*big.NewInt(3))}},
		BlockNumber: 100,
	}
	failed := callTrace(txA, alice, bob, 9, 2)
	failed.Error = "Reverted"
	traces := []common.Trace{callTrace(txA, alice, bob, 5), createTrace(txA, alice, created, 0), suicide, reward, failed}

	columns := &NativeTransferColumns{}
	require.NoError(t, processNativeTransfers(traces, columns, table))
	frame, err := columns.toFrame(table, 1)
	require.NoError(t, err)
	require.Equal(t, len(traces), frame.Height())

	assert.Equal(t, []interface{}{alice.Bytes(), alice.Bytes(), created.Bytes(), zeroAddress, alice.Bytes()}, columnValues(t, frame, "from_address"))
	assert.Equal(t, []interface{}{bob.Bytes(), created.Bytes(), bob.Bytes(), alice.Bytes(), bob.Bytes()}, columnValues(t, frame, "to_address"))
	assert.Equal(t, []interface{}{uint32(0), uint32(1), uint32(2), uint32(3), uint32(4)}, columnValues(t, frame, "transfer_index"))
	values := columnValues(t, frame, "value")
	assert.Equal(t, byte(5), values[0].([]byte)[31])
	assert.Equal(t, byte(7), values[2].([]byte)[31])
}

func TestNativeTransfersCreateWithoutResult(t *testing.T) {
	table := testTable(t, schema.NativeTransfers)
	create := createTrace(txA, alice, created)
	create.Result = nil

	columns := &NativeTransferColumns{}
	err := processNativeTransfers([]common.Trace{callTrace(txA, alice, bob, 1), create}, columns, table)
	assert.True(t, IsFatal(err))
	assert.Equal(t, 0, columns.nRows)
	assert.Empty(t, columns.fromAddress)
}

func TestCollectNativeTransfersByBlock(t *testing.T) {
	fetcher := mocks.NewMockIFetcher(t)
	fetcher.EXPECT().TraceBlock(mock.Anything, uint64(100)).Return([]common.Trace{callTrace(txA, alice, bob, 5)}, nil)
	fetcher.EXPECT().TraceBlock(mock.Anything, uint64(101)).Return([]common.Trace{callTrace(txB, bob, alice, 6)}, nil)
	fetcher.EXPECT().ChainID().Return(uint64(8453))

	frame, err := nativeTransfersKind.Collect(context.Background(), ByBlock, Partition{BlockNumbers: []uint64{100, 101}},
		fetcher, testRegistry(t, schema.NativeTransfers), Options{MaxConcurrentRequests: 2})
	require.NoError(t, err)
	require.Equal(t, 2, frame.Height())
	assert.Equal(t, []interface{}{txA.Bytes(), txB.Bytes()}, columnValues(t, frame, "transaction_hash"))
	assert.Equal(t, []interface{}{uint32(0), uint32(0)}, columnValues(t, frame, "transfer_index"))
	assert.Equal(t, []interface{}{uint64(8453), uint64(8453)}, columnValues(t, frame, "chain_id"))
}

func TestCollectMissingSchemaIsFatal(t *testing.T) {
	fetcher := mocks.NewMockIFetcher(t)
	_, err := tracesKind.Collect(context.Background(), ByBlock, Partition{BlockNumbers: []uint64{1}},
		fetcher, testRegistry(t, schema.Blocks), Options{})
	assert.True(t, IsMissingSchema(err))
	assert.True(t, IsFatal(err))
}
