package freeze

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	config "github.com/thirdweb-dev/freeze/configs"
	"github.com/thirdweb-dev/freeze/internal/collect"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/metrics"
	"github.com/thirdweb-dev/freeze/internal/rpc"
	"github.com/thirdweb-dev/freeze/internal/schema"
	"github.com/thirdweb-dev/freeze/internal/sink"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type Options struct {
	MaxConcurrentChunks   int
	MaxConcurrentRequests int
	MaxRetries            int
	RetryDelay            time.Duration
}

func OptionsFromConfig(cfg config.FreezeConfig) Options {
	opts := Options{
		MaxConcurrentChunks:   cfg.MaxConcurrentChunks,
		MaxConcurrentRequests: cfg.MaxConcurrentRequests,
		MaxRetries:            cfg.MaxRetries,
		RetryDelay:            time.Duration(cfg.RetryDelay) * time.Millisecond,
	}
	if opts.MaxConcurrentChunks <= 0 {
		opts.MaxConcurrentChunks = 4
	}
	return opts
}

// Summary counts the outcome of every (datatype, partition) pair of a run.
type Summary struct {
	Completed int
	Skipped   int
	Failed    int
	Rows      int
}

type Freezer struct {
	fetcher rpc.IFetcher
	schemas *schema.Registry
	sink    sink.ISink
	opts    Options

	mu      sync.Mutex
	summary Summary
}

func NewFreezer(fetcher rpc.IFetcher, schemas *schema.Registry, s sink.ISink, opts Options) *Freezer {
	if opts.MaxConcurrentChunks <= 0 {
		opts.MaxConcurrentChunks = 1
	}
	return &Freezer{fetcher: fetcher, schemas: schemas, sink: s, opts: opts}
}

// Run collects every chunk of the query. Chunks that fail are counted and
// logged without stopping the others; a missing schema aborts the run.
func (f *Freezer) Run(ctx context.Context, q Query) (Summary, error) {
	f.summary = Summary{}
	sem := semaphore.NewWeighted(int64(f.opts.MaxConcurrentChunks))
	g, gctx := errgroup.WithContext(ctx)

	log.Info().
		Int("datatypes", len(q.Datatypes)).
		Int("partitions", len(q.Partitions)).
		Int("maxConcurrentChunks", f.opts.MaxConcurrentChunks).
		Msg("Starting freeze")

	for _, d := range q.Datatypes {
		collector, ok := collect.Get(d)
		if !ok {
			return Summary{}, fmt.Errorf("no collector for datatype %s", d)
		}
		for _, partition := range q.Partitions {
			if err := sem.Acquire(gctx, 1); err != nil {
				// only fails once the context is done
				break
			}
			g.Go(func() error {
				defer sem.Release(1)
				return f.runChunk(gctx, collector, partition)
			})
		}
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	f.mu.Lock()
	summary := f.summary
	f.mu.Unlock()

	log.Info().
		Int("completed", summary.Completed).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Int("rows", summary.Rows).
		Msg("Freeze finished")
	return summary, err
}

func (f *Freezer) record(update func(*Summary)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	update(&f.summary)
}

func modeOf(partition collect.Partition) collect.Mode {
	if len(partition.TransactionHashes) > 0 {
		return collect.ByTransaction
	}
	return collect.ByBlock
}

// runChunk returns an error only when the whole run must stop.
func (f *Freezer) runChunk(ctx context.Context, collector collect.Collector, partition collect.Partition) error {
	d := collector.Datatype()
	label := partition.String()
	mode := modeOf(partition)
	logger := log.With().Str("datatype", d.String()).Str("chunk", label).Logger()

	skip := func(reason string) {
		logger.Debug().Msg(reason)
		metrics.ChunksSkipped.WithLabelValues(d.String()).Inc()
		f.record(func(s *Summary) { s.Skipped++ })
	}

	if _, _, ok := collector.Dims(mode); !ok {
		logger.Warn().Str("mode", mode.String()).Msg("Datatype cannot be collected in this mode, skipping chunk")
		skip("unsupported mode")
		return nil
	}
	if f.sink.Exists(d, label) {
		skip("Output already exists, skipping chunk")
		return nil
	}

	start := time.Now()
	frame, err := f.collectWithRetry(ctx, collector, mode, partition)
	metrics.ChunkDuration.WithLabelValues(d.String()).Observe(time.Since(start).Seconds())
	switch {
	case err == nil:
	case collect.IsMissingSchema(err):
		logger.Error().Err(err).Msg("Missing schema, aborting")
		metrics.ChunksFailed.WithLabelValues(d.String()).Inc()
		f.record(func(s *Summary) { s.Failed++ })
		return err
	case collect.IsNotFound(err):
		logger.Warn().Err(err).Msg("Data not found, skipping chunk")
		skip("not found")
		return nil
	default:
		logger.Error().Err(err).Msg("Failed to collect chunk")
		metrics.ChunksFailed.WithLabelValues(d.String()).Inc()
		f.record(func(s *Summary) { s.Failed++ })
		return nil
	}

	table, _ := f.schemas.Get(d)
	if err := frame.SortBy(table.SortColumns()...); err != nil {
		return f.fail(logger, d, fmt.Errorf("failed to sort chunk: %w", err))
	}
	if _, err := f.sink.Write(ctx, d, label, frame); err != nil {
		return f.fail(logger, d, err)
	}

	rows := frame.Height()
	metrics.ChunksCollected.WithLabelValues(d.String()).Inc()
	metrics.RowsCollected.WithLabelValues(d.String()).Add(float64(rows))
	f.record(func(s *Summary) {
		s.Completed++
		s.Rows += rows
	})
	logger.Debug().Int("rows", rows).Dur("duration", time.Since(start)).Msg("Collected chunk")
	return nil
}

func (f *Freezer) fail(logger zerolog.Logger, d schema.Datatype, err error) error {
	logger.Error().Err(err).Msg("Failed to store chunk")
	metrics.ChunksFailed.WithLabelValues(d.String()).Inc()
	f.record(func(s *Summary) { s.Failed++ })
	return nil
}

// collectWithRetry re-runs the chunk while the error is retryable.
func (f *Freezer) collectWithRetry(ctx context.Context, collector collect.Collector, mode collect.Mode, partition collect.Partition) (*dataframe.Frame, error) {
	opts := collect.Options{MaxConcurrentRequests: f.opts.MaxConcurrentRequests}
	for attempt := 0; ; attempt++ {
		frame, err := collector.Collect(ctx, mode, partition, f.fetcher, f.schemas, opts)
		if err == nil || !collect.IsRetryable(err) || attempt >= f.opts.MaxRetries || ctx.Err() != nil {
			return frame, err
		}
		metrics.ChunkRetries.WithLabelValues(collector.Datatype().String()).Inc()
		log.Debug().Err(err).
			Str("datatype", collector.Datatype().String()).
			Str("chunk", partition.String()).
			Int("attempt", attempt+1).
			Msg("Retrying chunk")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.opts.RetryDelay):
		}
	}
}
