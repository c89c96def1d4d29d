package collect

import (
	"errors"
	"fmt"
	"testing"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/rpc"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

func testRegistry(t *testing.T, datatypes ...schema.Datatype) *schema.Registry {
	t.Helper()
	registry, err := schema.Build(schema.Options{Datatypes: datatypes})
	require.NoError(t, err)
	return registry
}

func testTable(t *testing.T, d schema.Datatype) *schema.Table {
	t.Helper()
	table, ok := testRegistry(t, d).Get(d)
	require.True(t, ok)
	return table
}

func columnValues(t *testing.T, frame *dataframe.Frame, name string) []interface{} {
	t.Helper()
	values, ok := frame.Values(name)
	require.True(t, ok, "missing column %s", name)
	return values
}

type executionError struct {
	code int
}

func (e executionError) Error() string  { return fmt.Sprintf("execution reverted (%d)", e.code) }
func (e executionError) ErrorCode() int { return e.code }

func TestPartitionRequests(t *testing.T) {
	a := gethCommon.HexToAddress("0x01")
	b := gethCommon.HexToAddress("0x02")
	topic := gethCommon.HexToHash("0xaa")
	partition := Partition{
		BlockNumbers: []uint64{10, 11},
		Addresses:    []gethCommon.Address{a, b},
		Topics:       [][]gethCommon.Hash{{topic}},
	}

	requests, err := partition.Requests([]ChunkDim{DimBlockNumber, DimAddress}, nil)
	require.NoError(t, err)
	require.Len(t, requests, 4)

	expected := []struct {
		block   uint64
		address gethCommon.Address
	}{{10, a}, {10, b}, {11, a}, {11, b}}
	for i, req := range requests {
		block, err := req.BlockNumber()
		require.NoError(t, err)
		address, err := req.Address()
		require.NoError(t, err)
		assert.Equal(t, expected[i].block, block)
		assert.Equal(t, expected[i].address, address)
		assert.Equal(t, [][]gethCommon.Hash{{topic}}, req.Topics())
	}
}

func TestPartitionRequestsOptionalDims(t *testing.T) {
	partition := Partition{BlockNumbers: []uint64{5}}
	requests, err := partition.Requests([]ChunkDim{DimBlockNumber}, []ChunkDim{DimAddress})
	require.NoError(t, err)
	require.Len(t, requests, 1)

	_, err = requests[0].Address()
	assert.ErrorIs(t, err, errMissingDimension)

	filter, err := requests[0].LogFilter()
	require.NoError(t, err)
	assert.Equal(t, uint64(5), filter.FromBlock.Uint64())
	assert.Equal(t, uint64(5), filter.ToBlock.Uint64())
	assert.Empty(t, filter.Addresses)
}

func TestPartitionRequestsMissingRequiredDim(t *testing.T) {
	partition := Partition{BlockNumbers: []uint64{5}}
	_, err := partition.Requests([]ChunkDim{DimTransactionHash}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errMissingDimension)
}

func TestPartitionString(t *testing.T) {
	assert.Equal(t, "00000010_to_00000019", Partition{BlockNumbers: []uint64{10, 15, 19}}.String())
	assert.Equal(t, "custom", Partition{BlockNumbers: []uint64{1}, Label: "custom"}.String())
}

func TestClassify(t *testing.T) {
	err := classify(schema.Blocks, fmt.Errorf("fetch: %w", rpc.ErrNotFound), KindFetch)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsFatal(err))

	err = classify(schema.Blocks, errors.New("connection reset"), KindFetch)
	assert.True(t, IsRetryable(err))
	assert.False(t, IsFatal(err))

	err = classify(schema.Blocks, fmt.Errorf("req: %w", malformed(schema.Blocks, "bad")), KindFetch)
	assert.True(t, IsFatal(err))
	assert.False(t, IsRetryable(err))

	err = classify(schema.Logs, fmt.Errorf("x: %w", errMissingDimension), KindFetch)
	var collectErr *CollectError
	require.ErrorAs(t, err, &collectErr)
	assert.Equal(t, KindInvalidRequest, collectErr.Kind)
	assert.Equal(t, schema.Logs, collectErr.Datatype)

	assert.True(t, IsFatal(errors.New("unclassified")))
	assert.False(t, IsFatal(nil))
	assert.Nil(t, classify(schema.Logs, nil, KindFetch))
}

func TestStoreSkipsInactiveColumns(t *testing.T) {
	table := testTable(t, schema.Blocks)
	var active, inactive []uint64
	store(table, "gas_used", &active, 1)
	store(table, "gas_limit", &inactive, 1)
	assert.Equal(t, []uint64{1}, active)
	assert.Empty(t, inactive)
}

func TestFrameBuilderRowCountMismatch(t *testing.T) {
	table := testTable(t, schema.NativeTransfers)
	columns := &NativeTransferColumns{nRows: 1}
	_, err := columns.toFrame(table, 1)
	assert.ErrorContains(t, err, "expected 1 rows")
}

func TestCollectorsCoverEveryDatatype(t *testing.T) {
	for _, d := range schema.AllDatatypes() {
		collector, ok := Get(d)
		require.True(t, ok, d.String())
		assert.Equal(t, d, collector.Datatype())
		_, _, ok = collector.Dims(ByBlock)
		assert.True(t, ok, d.String())
	}
	_, _, ok := erc20MetadataKind.Dims(ByTransaction)
	assert.False(t, ok)
}
