package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	configs "github.com/thirdweb-dev/freeze/configs"
	"github.com/thirdweb-dev/freeze/internal/env"
	customLogger "github.com/thirdweb-dev/freeze/internal/log"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "freeze",
		Short: "Extract EVM chain data into parquet files",
		Long:  "freeze collects blocks, logs, traces, state diffs and token data from an EVM JSON-RPC node and writes them as parquet files, one file per datatype and chunk.",
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yml)")
	flags.String("rpc-url", "", "RPC Url to collect from")
	flags.Int("rpc-timeout", 0, "Timeout of a single RPC request in milliseconds")
	flags.String("log-level", "", "Log level to use for the application")
	flags.Bool("log-prettify", false, "Whether to prettify the log output")
	flags.StringSlice("datatypes", nil, "Datatypes to collect")
	flags.StringSlice("blocks", nil, "Blocks to collect, as numbers or inclusive start:end ranges")
	flags.StringSlice("transactions", nil, "Transaction hashes to collect")
	flags.StringSlice("addresses", nil, "Contract addresses to filter logs and query token metadata for")
	flags.StringArray("topics", nil, "Log topic filter, one flag per position; comma separate alternatives")
	flags.String("event-signature", "", "Event signature used to decode logs into event__ columns")
	flags.Int("chunk-size", 1000, "Blocks or transactions per output file")
	flags.Int("max-concurrent-chunks", 4, "How many chunks to collect at once")
	flags.Int("max-concurrent-requests", 16, "How many requests of a chunk to run at once")
	flags.Int("max-retries", 3, "How many times to retry a chunk after a fetch error")
	flags.Int("retry-delay", 1000, "Milliseconds to wait before retrying a chunk")
	flags.Bool("hex", false, "Write binary columns as 0x prefixed hex strings")
	flags.String("u256-type", "binary", "Encoding of 256-bit integers: binary, hex or decimal")
	flags.String("output-dir", ".", "Directory to write parquet files to")
	flags.Bool("overwrite", false, "Overwrite existing output files")
	flags.Bool("cache-enabled", false, "Cache RPC responses on disk")
	flags.String("cache-path", "", "Directory of the response cache")
	flags.Bool("s3-enabled", false, "Upload written files to S3")
	flags.String("s3-bucket", "", "S3 bucket to upload to")
	flags.String("s3-region", "", "S3 region")
	flags.String("s3-prefix", "", "Key prefix of uploaded files")
	flags.String("s3-endpoint", "", "Custom S3 endpoint")
	flags.Bool("metrics-enabled", false, "Expose prometheus metrics")
	flags.String("metrics-addr", ":2112", "Address of the metrics server")

	viper.BindPFlag("rpc.url", flags.Lookup("rpc-url"))
	viper.BindPFlag("rpc.timeout", flags.Lookup("rpc-timeout"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
	viper.BindPFlag("log.prettify", flags.Lookup("log-prettify"))
	viper.BindPFlag("freeze.datatypes", flags.Lookup("datatypes"))
	viper.BindPFlag("freeze.blocks", flags.Lookup("blocks"))
	viper.BindPFlag("freeze.transactions", flags.Lookup("transactions"))
	viper.BindPFlag("freeze.addresses", flags.Lookup("addresses"))
	viper.BindPFlag("freeze.topics", flags.Lookup("topics"))
	viper.BindPFlag("freeze.eventSignature", flags.Lookup("event-signature"))
	viper.BindPFlag("freeze.chunkSize", flags.Lookup("chunk-size"))
	viper.BindPFlag("freeze.maxConcurrentChunks", flags.Lookup("max-concurrent-chunks"))
	viper.BindPFlag("freeze.maxConcurrentRequests", flags.Lookup("max-concurrent-requests"))
	viper.BindPFlag("freeze.maxRetries", flags.Lookup("max-retries"))
	viper.BindPFlag("freeze.retryDelay", flags.Lookup("retry-delay"))
	viper.BindPFlag("freeze.hex", flags.Lookup("hex"))
	viper.BindPFlag("freeze.u256Type", flags.Lookup("u256-type"))
	viper.BindPFlag("freeze.outputDir", flags.Lookup("output-dir"))
	viper.BindPFlag("freeze.overwrite", flags.Lookup("overwrite"))
	viper.BindPFlag("cache.enabled", flags.Lookup("cache-enabled"))
	viper.BindPFlag("cache.path", flags.Lookup("cache-path"))
	viper.BindPFlag("output.s3.enabled", flags.Lookup("s3-enabled"))
	viper.BindPFlag("output.s3.bucket", flags.Lookup("s3-bucket"))
	viper.BindPFlag("output.s3.region", flags.Lookup("s3-region"))
	viper.BindPFlag("output.s3.prefix", flags.Lookup("s3-prefix"))
	viper.BindPFlag("output.s3.endpoint", flags.Lookup("s3-endpoint"))
	viper.BindPFlag("metrics.enabled", flags.Lookup("metrics-enabled"))
	viper.BindPFlag("metrics.addr", flags.Lookup("metrics-addr"))

	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(datatypesCmd)
}

func initConfig() {
	env.Load()
	if err := configs.LoadConfig(cfgFile); err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	customLogger.InitLogger()
}
