package cache

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/cockroachdb/pebble/vfs"
	"github.com/ethereum/go-ethereum"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/test/mocks"
)

func newTestFetcher(t *testing.T) (*Fetcher, *mocks.MockIFetcher) {
	t.Helper()
	store, err := Open("cache", vfs.NewMem())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	inner := mocks.NewMockIFetcher(t)
	inner.EXPECT().ChainID().Return(uint64(1)).Maybe()
	return NewFetcher(inner, store), inner
}

func TestGetBlockIsCached(t *testing.T) {
	fetcher, inner := newTestFetcher(t)
	hash := gethCommon.HexToHash("0x01")
	author := gethCommon.HexToAddress("0x02")
	number := hexutil.Uint64(5)
	block := &common.Block{Hash: &hash, Author: &author, Number: &number, ExtraData: []byte{0x01}}
	inner.EXPECT().GetBlock(mock.Anything, uint64(5)).Return(block, nil).Once()

	first, err := fetcher.GetBlock(context.Background(), 5)
	require.NoError(t, err)
	second, err := fetcher.GetBlock(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, block, first)
	assert.Equal(t, hash, *second.Hash)
	assert.Equal(t, author, *second.Author)
	assert.Equal(t, number, *second.Number)
}

func TestMissingBlockIsNotCached(t *testing.T) {
	fetcher, inner := newTestFetcher(t)
	inner.EXPECT().GetBlock(mock.Anything, uint64(9)).Return(nil, nil).Twice()

	for i := 0; i < 2; i++ {
		block, err := fetcher.GetBlock(context.Background(), 9)
		require.NoError(t, err)
		assert.Nil(t, block)
	}
}

func TestErrorsAreNotCached(t *testing.T) {
	fetcher, inner := newTestFetcher(t)
	txHash := gethCommon.HexToHash("0xaa")
	inner.EXPECT().TraceTransaction(mock.Anything, txHash).Return(nil, errors.New("timeout")).Once()
	inner.EXPECT().TraceTransaction(mock.Anything, txHash).Return([]common.Trace{}, nil).Once()

	_, err := fetcher.TraceTransaction(context.Background(), txHash)
	require.Error(t, err)
	traces, err := fetcher.TraceTransaction(context.Background(), txHash)
	require.NoError(t, err)
	assert.Empty(t, traces)

	traces, err = fetcher.TraceTransaction(context.Background(), txHash)
	require.NoError(t, err)
	assert.Empty(t, traces)
}

func TestCallIsCachedPerBlock(t *testing.T) {
	fetcher, inner := newTestFetcher(t)
	token := gethCommon.HexToAddress("0x20")
	data := []byte{0x31, 0x3c, 0xe5, 0x67}
	inner.EXPECT().Call(mock.Anything, token, data, uint64(1)).Return([]byte{0x12}, nil).Once()
	inner.EXPECT().Call(mock.Anything, token, data, uint64(2)).Return([]byte{0x06}, nil).Once()

	for i := 0; i < 2; i++ {
		out, err := fetcher.Call(context.Background(), token, data, 1)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x12}, out)
	}
	out, err := fetcher.Call(context.Background(), token, data, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x06}, out)
}

func TestOpenRangeLogsAreNotCached(t *testing.T) {
	fetcher, inner := newTestFetcher(t)
	open := ethereum.FilterQuery{FromBlock: big.NewInt(10)}
	inner.EXPECT().GetLogs(mock.Anything, open).Return(nil, nil).Twice()

	for i := 0; i < 2; i++ {
		_, err := fetcher.GetLogs(context.Background(), open)
		require.NoError(t, err)
	}

	pinned := ethereum.FilterQuery{FromBlock: big.NewInt(10), ToBlock: big.NewInt(10)}
	inner.EXPECT().GetLogs(mock.Anything, pinned).Return([]common.Log{{Data: []byte{0x01}}}, nil).Once()
	for i := 0; i < 2; i++ {
		logs, err := fetcher.GetLogs(context.Background(), pinned)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, hexutil.Bytes{0x01}, logs[0].Data)
	}
}
