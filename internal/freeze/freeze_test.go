package freeze

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	config "github.com/thirdweb-dev/freeze/configs"
	"github.com/thirdweb-dev/freeze/internal/collect"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/schema"
	"github.com/thirdweb-dev/freeze/test/mocks"
)

type memorySink struct {
	mu       sync.Mutex
	existing map[string]bool
	frames   map[string]*dataframe.Frame
}

func newMemorySink() *memorySink {
	return &memorySink{existing: map[string]bool{}, frames: map[string]*dataframe.Frame{}}
}

func (s *memorySink) Exists(d schema.Datatype, label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.existing[d.String()+"/"+label]
}

func (s *memorySink) Write(ctx context.Context, d schema.Datatype, label string, frame *dataframe.Frame) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := d.String() + "/" + label
	s.frames[key] = frame
	return key, nil
}

func testBlock(number uint64) *common.Block {
	hash := gethCommon.HexToHash("0x01")
	author := gethCommon.HexToAddress("0x02")
	n := hexutil.Uint64(number)
	return &common.Block{Hash: &hash, Author: &author, Number: &n}
}

func registry(t *testing.T, datatypes ...schema.Datatype) *schema.Registry {
	r, err := schema.Build(schema.Options{Datatypes: datatypes})
	require.NoError(t, err)
	return r
}

func TestParseBlocks(t *testing.T) {
	blocks, err := ParseBlocks([]string{"5:7", "3", "6", "1_000"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{3, 5, 6, 7, 1000}, blocks)

	_, err = ParseBlocks([]string{"7:5"})
	assert.Error(t, err)
	_, err = ParseBlocks([]string{"latest"})
	assert.Error(t, err)
}

func TestParseBlocksAtUint64Limit(t *testing.T) {
	blocks, err := ParseBlocks([]string{"18446744073709551614:18446744073709551615"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{math.MaxUint64 - 1, math.MaxUint64}, blocks)

	blocks, err = ParseBlocks([]string{"0xffffffffffffffff:0xffffffffffffffff"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{math.MaxUint64}, blocks)

	_, err = ParseBlocks([]string{"0:18446744073709551615"})
	assert.ErrorContains(t, err, "more than")
}

func TestQueryFromConfig(t *testing.T) {
	q, err := QueryFromConfig(config.FreezeConfig{
		Datatypes:    []string{"blocks", "erc20-metadata"},
		Blocks:       []string{"0:4"},
		Transactions: []string{"0x00000000000000000000000000000000000000000000000000000000000000aa"},
		Addresses:    []string{"0x0000000000000000000000000000000000000020"},
		Topics:       []string{"", "0x00000000000000000000000000000000000000000000000000000000000000bb"},
		ChunkSize:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, []schema.Datatype{schema.Blocks, schema.Erc20Metadata}, q.Datatypes)
	require.Len(t, q.Partitions, 4)
	assert.Equal(t, []uint64{0, 1}, q.Partitions[0].BlockNumbers)
	assert.Equal(t, []uint64{4}, q.Partitions[2].BlockNumbers)
	assert.Len(t, q.Partitions[3].TransactionHashes, 1)
	assert.Len(t, q.Partitions[0].Addresses, 1)
	require.Len(t, q.Partitions[0].Topics, 2)
	assert.Nil(t, q.Partitions[0].Topics[0])

	_, err = QueryFromConfig(config.FreezeConfig{Datatypes: []string{"blocks"}})
	assert.Error(t, err)
	_, err = QueryFromConfig(config.FreezeConfig{Datatypes: []string{"blocks"}, Blocks: []string{"1"}, Addresses: []string{"nope"}})
	assert.Error(t, err)
}

func TestRunCollectsAndSkipsNotFound(t *testing.T) {
	fetcher := mocks.NewMockIFetcher(t)
	fetcher.EXPECT().GetBlock(mock.Anything, uint64(1)).Return(testBlock(1), nil)
	fetcher.EXPECT().GetBlock(mock.Anything, uint64(2)).Return(testBlock(2), nil)
	fetcher.EXPECT().GetBlock(mock.Anything, uint64(3)).Return(nil, nil)
	fetcher.EXPECT().ChainID().Return(uint64(1))

	s := newMemorySink()
	freezer := NewFreezer(fetcher, registry(t, schema.Blocks), s, Options{MaxConcurrentChunks: 2})
	summary, err := freezer.Run(context.Background(), Query{
		Datatypes: []schema.Datatype{schema.Blocks},
		Partitions: []collect.Partition{
			{BlockNumbers: []uint64{2, 1}, Label: "a"},
			{BlockNumbers: []uint64{3}, Label: "b"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, Summary{Completed: 1, Skipped: 1, Rows: 2}, summary)

	frame := s.frames["blocks/a"]
	require.NotNil(t, frame)
	numbers, ok := frame.Values("block_number")
	require.True(t, ok)
	assert.Equal(t, []interface{}{uint32(1), uint32(2)}, numbers)
}

func TestRunRetriesFetchErrors(t *testing.T) {
	fetcher := mocks.NewMockIFetcher(t)
	fetcher.EXPECT().GetBlock(mock.Anything, uint64(1)).Return(nil, errors.New("503")).Once()
	fetcher.EXPECT().GetBlock(mock.Anything, uint64(1)).Return(testBlock(1), nil).Once()
	fetcher.EXPECT().ChainID().Return(uint64(1))

	freezer := NewFreezer(fetcher, registry(t, schema.Blocks), newMemorySink(), Options{MaxRetries: 1})
	summary, err := freezer.Run(context.Background(), Query{
		Datatypes:  []schema.Datatype{schema.Blocks},
		Partitions: []collect.Partition{{BlockNumbers: []uint64{1}}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Completed)
}

func TestRunCountsExhaustedRetries(t *testing.T) {
	fetcher := mocks.NewMockIFetcher(t)
	fetcher.EXPECT().GetBlock(mock.Anything, uint64(1)).Return(nil, errors.New("503")).Times(2)

	freezer := NewFreezer(fetcher, registry(t, schema.Blocks), newMemorySink(), Options{MaxRetries: 1})
	summary, err := freezer.Run(context.Background(), Query{
		Datatypes:  []schema.Datatype{schema.Blocks},
		Partitions: []collect.Partition{{BlockNumbers: []uint64{1}}},
	})
	require.NoError(t, err)
	assert.Equal(t, Summary{Failed: 1}, summary)
}

func TestRunAbortsOnMissingSchema(t *testing.T) {
	fetcher := mocks.NewMockIFetcher(t)
	freezer := NewFreezer(fetcher, registry(t, schema.Blocks), newMemorySink(), Options{})
	_, err := freezer.Run(context.Background(), Query{
		Datatypes:  []schema.Datatype{schema.Logs},
		Partitions: []collect.Partition{{BlockNumbers: []uint64{1}}},
	})
	assert.True(t, collect.IsMissingSchema(err))
}

func TestRunSkipsExistingOutputAndUnsupportedModes(t *testing.T) {
	fetcher := mocks.NewMockIFetcher(t)
	s := newMemorySink()
	s.existing["blocks/done"] = true

	freezer := NewFreezer(fetcher, registry(t, schema.Blocks, schema.Erc20Metadata), s, Options{})
	summary, err := freezer.Run(context.Background(), Query{
		Datatypes: []schema.Datatype{schema.Blocks, schema.Erc20Metadata},
		Partitions: []collect.Partition{
			{BlockNumbers: []uint64{1}, Label: "done"},
		},
	})
	require.NoError(t, err)
	// erc20 metadata needs addresses, which the partition does not carry
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Failed)

	summary, err = freezer.Run(context.Background(), Query{
		Datatypes:  []schema.Datatype{schema.Erc20Metadata},
		Partitions: []collect.Partition{{TransactionHashes: []gethCommon.Hash{{0x01}}}},
	})
	require.NoError(t, err)
	assert.Equal(t, Summary{Skipped: 1}, summary)
}
