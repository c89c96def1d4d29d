package collect

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/rpc"
	"github.com/thirdweb-dev/freeze/internal/schema"
	"golang.org/x/sync/errgroup"
)

type Mode int

const (
	ByBlock Mode = iota
	ByTransaction
)

func (m Mode) String() string {
	if m == ByTransaction {
		return "by_transaction"
	}
	return "by_block"
}

// Stage is one extraction strategy of a datatype. Extract performs the fetcher
// calls for a single request; Transform appends the response to the columns
// without doing any I/O.
type Stage[R any, C any] struct {
	Dims         []ChunkDim
	OptionalDims []ChunkDim
	Extract      func(ctx context.Context, req Request, fetcher rpc.IFetcher, schemas *schema.Registry) (R, error)
	Transform    func(response R, columns *C, schemas *schema.Registry) error
}

// columnSet is implemented by the pointer type of every column accumulator.
type columnSet[C any] interface {
	*C
	toFrame(t *schema.Table, chainID uint64) (*dataframe.Frame, error)
}

type Options struct {
	MaxConcurrentRequests int
}

// Collector is the type-erased view of a datatype used by the scheduler.
type Collector interface {
	Datatype() schema.Datatype
	// Dims returns the required and optional chunk dimensions of a mode.
	Dims(mode Mode) (required []ChunkDim, optional []ChunkDim, ok bool)
	Collect(ctx context.Context, mode Mode, partition Partition, fetcher rpc.IFetcher, schemas *schema.Registry, opts Options) (*dataframe.Frame, error)
}

type kind[R any, C any, PC columnSet[C]] struct {
	datatype      schema.Datatype
	byBlock       *Stage[R, C]
	byTransaction *Stage[R, C]
}

func (k *kind[R, C, PC]) Datatype() schema.Datatype {
	return k.datatype
}

func (k *kind[R, C, PC]) stage(mode Mode) *Stage[R, C] {
	if mode == ByTransaction {
		return k.byTransaction
	}
	return k.byBlock
}

func (k *kind[R, C, PC]) Dims(mode Mode) ([]ChunkDim, []ChunkDim, bool) {
	stage := k.stage(mode)
	if stage == nil {
		return nil, nil, false
	}
	return stage.Dims, stage.OptionalDims, true
}

// Collect extracts every request of the partition concurrently, transforms the
// responses in request order into one accumulator and assembles the frame.
// Either the complete frame or an error is returned, never a partial frame.
func (k *kind[R, C, PC]) Collect(ctx context.Context, mode Mode, partition Partition, fetcher rpc.IFetcher, schemas *schema.Registry, opts Options) (*dataframe.Frame, error) {
	table, ok := schemas.Get(k.datatype)
	if !ok {
		return nil, missingSchema(k.datatype)
	}
	stage := k.stage(mode)
	if stage == nil {
		return nil, newError(KindInvalidRequest, k.datatype, "%s cannot be collected %s", k.datatype, mode)
	}
	requests, err := partition.Requests(stage.Dims, stage.OptionalDims)
	if err != nil {
		return nil, classify(k.datatype, err, KindInvalidRequest)
	}

	log.Debug().
		Str("datatype", k.datatype.String()).
		Str("mode", mode.String()).
		Str("partition", partition.String()).
		Int("requests", len(requests)).
		Msg("Collecting partition")

	responses := make([]R, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	if opts.MaxConcurrentRequests > 0 {
		g.SetLimit(opts.MaxConcurrentRequests)
	}
	for i, req := range requests {
		g.Go(func() error {
			response, err := stage.Extract(gctx, req, fetcher, schemas)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			if err != nil {
				return classify(k.datatype, fmt.Errorf("%s: %w", req, err), KindFetch)
			}
			responses[i] = response
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	columns := new(C)
	for _, response := range responses {
		if err := stage.Transform(response, columns, schemas); err != nil {
			return nil, classify(k.datatype, err, KindMalformed)
		}
	}

	frame, err := PC(columns).toFrame(table, fetcher.ChainID())
	if err != nil {
		return nil, classify(k.datatype, err, KindMalformed)
	}
	return frame, nil
}

// Collectors is the dispatch table from datatype to its collector.
var Collectors = map[schema.Datatype]Collector{
	schema.Blocks:          blocksKind,
	schema.Logs:            logsKind,
	schema.Traces:          tracesKind,
	schema.Contracts:       contractsKind,
	schema.CodeDiffs:       codeDiffsKind,
	schema.BalanceDiffs:    balanceDiffsKind,
	schema.NonceDiffs:      nonceDiffsKind,
	schema.Erc20Metadata:   erc20MetadataKind,
	schema.Erc721Transfers: erc721TransfersKind,
	schema.NativeTransfers: nativeTransfersKind,
}

func Get(d schema.Datatype) (Collector, bool) {
	c, ok := Collectors[d]
	return c, ok
}

// tableFor looks up the datatype's table for a transform.
func tableFor(schemas *schema.Registry, d schema.Datatype) (*schema.Table, error) {
	t, ok := schemas.Get(d)
	if !ok {
		return nil, missingSchema(d)
	}
	return t, nil
}
