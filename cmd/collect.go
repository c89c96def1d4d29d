package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	config "github.com/thirdweb-dev/freeze/configs"
	"github.com/thirdweb-dev/freeze/internal/cache"
	"github.com/thirdweb-dev/freeze/internal/freeze"
	"github.com/thirdweb-dev/freeze/internal/metrics"
	"github.com/thirdweb-dev/freeze/internal/rpc"
	"github.com/thirdweb-dev/freeze/internal/schema"
	"github.com/thirdweb-dev/freeze/internal/sink"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect the configured datatypes into parquet files",
	Long:  "Splits the requested blocks and transactions into chunks, collects every datatype for each chunk and writes one parquet file per datatype and chunk.",
	Run: func(cmd *cobra.Command, args []string) {
		RunCollect(cmd, args)
	},
}

func RunCollect(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runFreeze(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Collect failed")
	}
	fmt.Printf("completed=%d skipped=%d failed=%d rows=%d\n", summary.Completed, summary.Skipped, summary.Failed, summary.Rows)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func runFreeze(ctx context.Context) (freeze.Summary, error) {
	query, err := freeze.QueryFromConfig(config.Cfg.Freeze)
	if err != nil {
		return freeze.Summary{}, fmt.Errorf("invalid query: %w", err)
	}
	schemaOpts, err := schema.OptionsFromConfig(config.Cfg.Freeze)
	if err != nil {
		return freeze.Summary{}, fmt.Errorf("invalid schema options: %w", err)
	}
	schemas, err := schema.Build(schemaOpts)
	if err != nil {
		return freeze.Summary{}, err
	}

	if config.Cfg.Metrics.Enabled {
		metrics.Serve(ctx, config.Cfg.Metrics.Addr)
	}

	client, err := rpc.Initialize()
	if err != nil {
		return freeze.Summary{}, fmt.Errorf("failed to initialize RPC: %w", err)
	}
	defer client.Close()
	log.Info().Uint64("chainId", client.ChainID()).Str("url", client.GetURL()).Msg("Connected to RPC")

	var fetcher rpc.IFetcher = client
	if config.Cfg.Cache.Enabled {
		store, err := cache.Open(config.Cfg.Cache.Path, nil)
		if err != nil {
			return freeze.Summary{}, err
		}
		defer store.Close()
		fetcher = cache.NewFetcher(client, store)
	}

	var uploader *sink.S3Uploader
	if config.Cfg.Output.S3.Enabled {
		uploader, err = sink.NewS3Uploader(ctx, config.Cfg.Output.S3, client.ChainID())
		if err != nil {
			return freeze.Summary{}, err
		}
	}
	out, err := sink.New(config.Cfg.Freeze.OutputDir, config.Cfg.Freeze.Overwrite, uploader)
	if err != nil {
		return freeze.Summary{}, err
	}

	freezer := freeze.NewFreezer(fetcher, schemas, out, freeze.OptionsFromConfig(config.Cfg.Freeze))
	return freezer.Run(ctx, query)
}
