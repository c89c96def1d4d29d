package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Collection Metrics
var (
	ChunksCollected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freeze_chunks_collected_total",
		Help: "The total number of chunks collected successfully",
	}, []string{"datatype"})

	ChunksSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freeze_chunks_skipped_total",
		Help: "The total number of chunks skipped because the data was not found",
	}, []string{"datatype"})

	ChunksFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freeze_chunks_failed_total",
		Help: "The total number of chunks that failed after all retries",
	}, []string{"datatype"})

	ChunkRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freeze_chunk_retries_total",
		Help: "The total number of chunk retries after retryable errors",
	}, []string{"datatype"})

	RowsCollected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freeze_rows_collected_total",
		Help: "The total number of rows collected",
	}, []string{"datatype"})

	ChunkDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "freeze_chunk_duration_seconds",
		Help:    "Time taken to collect a single chunk",
		Buckets: prometheus.DefBuckets,
	}, []string{"datatype"})
)

// RPC Metrics
var (
	RPCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "freeze_rpc_request_duration_seconds",
		Help:    "Time taken by JSON-RPC requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	RPCRequestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freeze_rpc_request_errors_total",
		Help: "The total number of failed JSON-RPC requests",
	}, []string{"method"})
)

// Cache Metrics
var (
	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freeze_cache_hits_total",
		Help: "The total number of responses served from the cache",
	}, []string{"method"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freeze_cache_misses_total",
		Help: "The total number of responses fetched because they were not cached",
	}, []string{"method"})
)

// Output Metrics
var (
	FilesWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "freeze_files_written_total",
		Help: "The total number of output files written",
	}, []string{"datatype"})

	FilesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "freeze_files_uploaded_total",
		Help: "The total number of output files uploaded to S3",
	})
)

// Serve exposes the default registry on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to shut down metrics server")
		}
	}()

	go func() {
		log.Info().Str("addr", addr).Msg("Starting metrics server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Metrics server stopped")
		}
	}()
}
