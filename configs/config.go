package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type LogConfig struct {
	Level    string `mapstructure:"level"`
	Prettify bool   `mapstructure:"prettify"`
}

type RPCConfig struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"`
}

type ColumnSelectionConfig struct {
	All       bool              `mapstructure:"all"`
	Include   []string          `mapstructure:"include"`
	Exclude   []string          `mapstructure:"exclude"`
	Hex       []string          `mapstructure:"hex"`
	U256Types map[string]string `mapstructure:"u256Types"`
}

type FreezeConfig struct {
	Datatypes             []string                         `mapstructure:"datatypes"`
	Blocks                []string                         `mapstructure:"blocks"`
	Transactions          []string                         `mapstructure:"transactions"`
	Addresses             []string                         `mapstructure:"addresses"`
	Topics                []string                         `mapstructure:"topics"`
	EventSignature        string                           `mapstructure:"eventSignature"`
	ChunkSize             int                              `mapstructure:"chunkSize"`
	MaxConcurrentChunks   int                              `mapstructure:"maxConcurrentChunks"`
	MaxConcurrentRequests int                              `mapstructure:"maxConcurrentRequests"`
	MaxRetries            int                              `mapstructure:"maxRetries"`
	RetryDelay            int                              `mapstructure:"retryDelay"`
	Hex                   bool                             `mapstructure:"hex"`
	U256Type              string                           `mapstructure:"u256Type"`
	Columns               map[string]ColumnSelectionConfig `mapstructure:"columns"`
	Sort                  map[string][]string              `mapstructure:"sort"`
	OutputDir             string                           `mapstructure:"outputDir"`
	Overwrite             bool                             `mapstructure:"overwrite"`
}

type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Prefix          string `mapstructure:"prefix"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
}

type OutputConfig struct {
	S3 S3Config `mapstructure:"s3"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type Config struct {
	RPC     RPCConfig     `mapstructure:"rpc"`
	Log     LogConfig     `mapstructure:"log"`
	Freeze  FreezeConfig  `mapstructure:"freeze"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Output  OutputConfig  `mapstructure:"output"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

var Cfg Config

func LoadConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file, %s", err)
		}
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./configs")

		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error reading config file, %s", err)
			}
		}

		viper.SetConfigName("secrets")
		if err := viper.MergeInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("error loading secrets file: %v", err)
			}
		}
	}

	// sets e.g. RPC_URL to rpc.url
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	viper.AutomaticEnv()

	err := viper.Unmarshal(&Cfg)
	if err != nil {
		return fmt.Errorf("error unmarshalling config: %v", err)
	}

	return nil
}
