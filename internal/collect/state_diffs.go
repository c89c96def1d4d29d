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

func extractBlockStateDiffs(ctx context.Context, req Request, fetcher rpc.IFetcher, _ *schema.Registry) (common.StateDiffs, error) {
	blockNumber, err := req.BlockNumber()
	if err != nil {
		return common.StateDiffs{}, err
	}
	return fetcher.TraceBlockStateDiffs(ctx, blockNumber)
}

func extractTransactionStateDiffs(ctx context.Context, req Request, fetcher rpc.IFetcher, _ *schema.Registry) (common.StateDiffs, error) {
	txHash, err := req.TransactionHash()
	if err != nil {
		return common.StateDiffs{}, err
	}
	return fetcher.TraceTransactionStateDiffs(ctx, txHash)
}

func stateDiffStages[C any](transform func(common.StateDiffs, *C, *schema.Registry) error) (*Stage[common.StateDiffs, C], *Stage[common.StateDiffs, C]) {
	byBlock := &Stage[common.StateDiffs, C]{
		Dims:      []ChunkDim{DimBlockNumber},
		Extract:   extractBlockStateDiffs,
		Transform: transform,
	}
	byTransaction := &Stage[common.StateDiffs, C]{
		Dims:      []ChunkDim{DimTransactionHash},
		Extract:   extractTransactionStateDiffs,
		Transform: transform,
	}
	return byBlock, byTransaction
}

// diffRows holds the columns shared by every state diff datatype.
type diffRows struct {
	nRows            int
	blockNumber      []*uint32
	transactionIndex []uint64
	transactionHash  [][]byte
	address          [][]byte
}

func (r *diffRows) addTo(b *frameBuilder) {
	b.optUint32s("block_number", r.blockNumber)
	b.uint64s("transaction_index", r.transactionIndex)
	b.binary("transaction_hash", r.transactionHash)
	b.binary("address", r.address)
}

// diffValues resolves a diff to its (from, to) pair, substituting zero for
// whichever side does not exist.
func diffValues[T any, V any](d common.Diff[T], zero V, convert func(T) V) (V, V) {
	switch d.Kind {
	case common.DiffBorn:
		return zero, convert(d.To)
	case common.DiffDied:
		return convert(d.From), zero
	case common.DiffChanged:
		return convert(d.From), convert(d.To)
	}
	return zero, zero
}

// processStateDiffs emits one row per (trace, address) in ascending address
// order. transaction_index is the position of the trace in the response.
func processStateDiffs[V any](diffs common.StateDiffs, rows *diffRows, from, to *[]V, t *schema.Table, resolve func(common.AccountDiff) (V, V)) {
	var blockNumber *uint32
	if diffs.BlockNumber != nil {
		blockNumber = ptr(uint32(*diffs.BlockNumber))
	}
	for i, trace := range diffs.Traces {
		txHash := trace.TransactionHash
		if txHash == nil {
			txHash = diffs.TransactionHash
		}
		var hash []byte
		if txHash != nil {
			hash = txHash.Bytes()
		}
		for _, address := range trace.StateDiff.SortedAddresses() {
			fromValue, toValue := resolve(trace.StateDiff[address])
			rows.nRows++
			store(t, "block_number", &rows.blockNumber, blockNumber)
			store(t, "transaction_index", &rows.transactionIndex, uint64(i))
			store(t, "transaction_hash", &rows.transactionHash, hash)
			store(t, "address", &rows.address, address.Bytes())
			store(t, "from_value", from, fromValue)
			store(t, "to_value", to, toValue)
		}
	}
}

// Code

var codeDiffsKind = func() *kind[common.StateDiffs, CodeDiffColumns, *CodeDiffColumns] {
	byBlock, byTransaction := stateDiffStages(transformCodeDiffs)
	return &kind[common.StateDiffs, CodeDiffColumns, *CodeDiffColumns]{
		datatype:      schema.CodeDiffs,
		byBlock:       byBlock,
		byTransaction: byTransaction,
	}
}()

type CodeDiffColumns struct {
	diffRows
	fromValue [][]byte
	toValue   [][]byte
}

var zeroCode = make([]byte, 32)

func resolveCodeDiff(d common.AccountDiff) ([]byte, []byte) {
	return diffValues(d.Code, zeroCode, func(code hexutil.Bytes) []byte { return nonNil(code) })
}

func transformCodeDiffs(diffs common.StateDiffs, columns *CodeDiffColumns, schemas *schema.Registry) error {
	t, err := tableFor(schemas, schema.CodeDiffs)
	if err != nil {
		return err
	}
	processStateDiffs(diffs, &columns.diffRows, &columns.fromValue, &columns.toValue, t, resolveCodeDiff)
	return nil
}

func (c *CodeDiffColumns) toFrame(t *schema.Table, chainID uint64) (*dataframe.Frame, error) {
	b := newFrameBuilder(t, c.nRows)
	c.addTo(b)
	b.binary("from_value", c.fromValue)
	b.binary("to_value", c.toValue)
	b.chainID(chainID)
	return b.build()
}

// Balance

var balanceDiffsKind = func() *kind[common.StateDiffs, BalanceDiffColumns, *BalanceDiffColumns] {
	byBlock, byTransaction := stateDiffStages(transformBalanceDiffs)
	return &kind[common.StateDiffs, BalanceDiffColumns, *BalanceDiffColumns]{
		datatype:      schema.BalanceDiffs,
		byBlock:       byBlock,
		byTransaction: byTransaction,
	}
}()

type BalanceDiffColumns struct {
	diffRows
	fromValue []*uint256.Int
	toValue   []*uint256.Int
}

func resolveBalanceDiff(d common.AccountDiff) (*uint256.Int, *uint256.Int) {
	return diffValues(d.Balance, uint256.NewInt(0), func(v hexutil.Big) *uint256.Int { return bigToU256(&v) })
}

func transformBalanceDiffs(diffs common.StateDiffs, columns *BalanceDiffColumns, schemas *schema.Registry) error {
	t, err := tableFor(schemas, schema.BalanceDiffs)
	if err != nil {
		return err
	}
	processStateDiffs(diffs, &columns.diffRows, &columns.fromValue, &columns.toValue, t, resolveBalanceDiff)
	return nil
}

func (c *BalanceDiffColumns) toFrame(t *schema.Table, chainID uint64) (*dataframe.Frame, error) {
	b := newFrameBuilder(t, c.nRows)
	c.addTo(b)
	b.u256s("from_value", c.fromValue)
	b.u256s("to_value", c.toValue)
	b.chainID(chainID)
	return b.build()
}

// Nonce

var nonceDiffsKind = func() *kind[common.StateDiffs, NonceDiffColumns, *NonceDiffColumns] {
	byBlock, byTransaction := stateDiffStages(transformNonceDiffs)
	return &kind[common.StateDiffs, NonceDiffColumns, *NonceDiffColumns]{
		datatype:      schema.NonceDiffs,
		byBlock:       byBlock,
		byTransaction: byTransaction,
	}
}()

type NonceDiffColumns struct {
	diffRows
	fromValue []uint64
	toValue   []uint64
}

func resolveNonceDiff(d common.AccountDiff) (uint64, uint64) {
	return diffValues(d.Nonce, uint64(0), func(n hexutil.Uint64) uint64 { return uint64(n) })
}

func transformNonceDiffs(diffs common.StateDiffs, columns *NonceDiffColumns, schemas *schema.Registry) error {
	t, err := tableFor(schemas, schema.NonceDiffs)
	if err != nil {
		return err
	}
	processStateDiffs(diffs, &columns.diffRows, &columns.fromValue, &columns.toValue, t, resolveNonceDiff)
	return nil
}

func (c *NonceDiffColumns) toFrame(t *schema.Table, chainID uint64) (*dataframe.Frame, error) {
	b := newFrameBuilder(t, c.nRows)
	c.addTo(b)
	b.uint64s("from_value", c.fromValue)
	b.uint64s("to_value", c.toValue)
	b.chainID(chainID)
	return b.build()
}
