package collect

import (
	"context"
	"slices"
	"testing"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/schema"
	"github.com/thirdweb-dev/freeze/test/mocks"
)

type frameSource interface {
	toFrame(t *schema.Table, chainID uint64) (*dataframe.Frame, error)
}

// stageRun transforms one fixed response into a fresh accumulator.
type stageRun func(schemas *schema.Registry) (columns frameSource, rows int, err error)

func runByBlock[R any, C any, PC columnSet[C]](k *kind[R, C, PC], response R, rows func(*C) int) stageRun {
	return func(schemas *schema.Registry) (frameSource, int, error) {
		columns := new(C)
		err := k.byBlock.Transform(response, columns, schemas)
		return PC(columns), rows(columns), err
	}
}

func stageRuns() map[schema.Datatype]stageRun {
	from := gethCommon.BytesToHash(alice.Bytes())
	to := gethCommon.BytesToHash(bob.Bytes())
	logs := []common.Log{
		transferLog([]gethCommon.Hash{TransferTopic, from, to}, word(1), 0),
		transferLog([]gethCommon.Hash{TransferTopic, from, to}, word(2), 1),
	}
	traces := []common.Trace{
		callTrace(txA, alice, factory, 3),
		createTrace(txA, factory, created, 0),
	}
	name := "Token"

	return map[schema.Datatype]stageRun{
		schema.Blocks: runByBlock(blocksKind, testBlock(1), func(c *BlockColumns) int { return c.nRows }),
		schema.Logs:   runByBlock(logsKind, logs, func(c *LogColumns) int { return c.nRows }),
		schema.Traces: runByBlock(tracesKind, traces, func(c *TraceColumns) int { return c.nRows }),
		schema.Contracts: runByBlock(contractsKind, traces,
			func(c *ContractColumns) int { return c.nRows }),
		schema.CodeDiffs: runByBlock(codeDiffsKind, testStateDiffs(),
			func(c *CodeDiffColumns) int { return c.nRows }),
		schema.BalanceDiffs: runByBlock(balanceDiffsKind, testStateDiffs(),
			func(c *BalanceDiffColumns) int { return c.nRows }),
		schema.NonceDiffs: runByBlock(nonceDiffsKind, testStateDiffs(),
			func(c *NonceDiffColumns) int { return c.nRows }),
		schema.Erc20Metadata: runByBlock(erc20MetadataKind, erc20Metadata{blockNumber: 300, address: created, name: &name},
			func(c *Erc20MetadataColumns) int { return c.nRows }),
		schema.Erc721Transfers: runByBlock(erc721TransfersKind, logs,
			func(c *Erc721TransferColumns) int { return c.nRows }),
		schema.NativeTransfers: runByBlock(nativeTransfersKind, traces,
			func(c *NativeTransferColumns) int { return c.nRows }),
	}
}

func TestStageRunsCoverCollectors(t *testing.T) {
	runs := stageRuns()
	for d := range Collectors {
		assert.Contains(t, runs, d, d.String())
	}
}

func TestTransformWithoutTableLeavesColumnsEmpty(t *testing.T) {
	for d, run := range stageRuns() {
		t.Run(d.String(), func(t *testing.T) {
			other := schema.Blocks
			if d == schema.Blocks {
				other = schema.Logs
			}
			_, rows, err := run(testRegistry(t, other))
			assert.True(t, IsMissingSchema(err), "%v", err)
			assert.True(t, IsFatal(err))
			assert.Equal(t, 0, rows)
		})
	}
}

// narrowSelection keeps the first column of the datatype plus chain_id.
func narrowSelection(t *testing.T, d schema.Datatype) schema.ColumnSelection {
	t.Helper()
	def, ok := schema.DefinitionOf(d)
	require.True(t, ok)
	names := def.ColumnNames()
	keep := []string{names[0]}
	if slices.Contains(names, "chain_id") {
		keep = append(keep, "chain_id")
	}
	var exclude []string
	for _, name := range names {
		if !slices.Contains(keep, name) {
			exclude = append(exclude, name)
		}
	}
	return schema.ColumnSelection{Include: keep, Exclude: exclude}
}

func TestTransformFramesMatchTableColumns(t *testing.T) {
	for d, run := range stageRuns() {
		selections := map[string]schema.ColumnSelection{
			"default": {},
			"wide":    {All: true},
			"narrow":  narrowSelection(t, d),
		}
		for name, selection := range selections {
			t.Run(d.String()+"/"+name, func(t *testing.T) {
				registry, err := schema.Build(schema.Options{
					Datatypes: []schema.Datatype{d},
					Columns:   map[schema.Datatype]schema.ColumnSelection{d: selection},
				})
				require.NoError(t, err)
				table, ok := registry.Get(d)
				require.True(t, ok)

				columns, rows, err := run(registry)
				require.NoError(t, err)
				require.Positive(t, rows)

				frame, err := columns.toFrame(table, 1)
				require.NoError(t, err)
				assert.Equal(t, table.Columns(), frame.Columns())
				assert.Equal(t, rows, frame.Height())
				if table.HasColumn("chain_id") {
					assert.Equal(t, uint64(1), columnValues(t, frame, "chain_id")[0])
				}
				if name == "narrow" {
					assert.LessOrEqual(t, frame.Width(), 2)
				}
			})
		}
	}
}

func TestCollectCancellationIsNotRetryable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetcher := mocks.NewMockIFetcher(t)
	fetcher.EXPECT().GetBlock(mock.Anything, uint64(1)).Return(nil, context.Canceled)

	_, err := blocksKind.Collect(ctx, ByBlock, Partition{BlockNumbers: []uint64{1}},
		fetcher, testRegistry(t, schema.Blocks), Options{})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, IsRetryable(err))
	assert.False(t, IsNotFound(err))
}
