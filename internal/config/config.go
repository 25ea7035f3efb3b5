// Package config provides layered configuration management for the bond
// trading pipeline via viper: defaults, then an optional config file, then
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all pipeline configuration.
type Config struct {
	Files   FilesConfig   `mapstructure:"files"`
	GUI     GUIConfig     `mapstructure:"gui"`
	Routing RoutingConfig `mapstructure:"routing"`
	Logging LoggingConfig `mapstructure:"logging"`
	Sectors []SectorConfig `mapstructure:"sectors"`
}

// FilesConfig holds the input/output file paths.
type FilesConfig struct {
	Prices     string `mapstructure:"prices"`
	MarketData string `mapstructure:"market_data"`
	Trades     string `mapstructure:"trades"`
	Inquiries  string `mapstructure:"inquiries"`
	OutDir     string `mapstructure:"out_dir"`
}

// GUIConfig holds the GUIThrottle rate-limit parameters.
type GUIConfig struct {
	MaxPrints      int `mapstructure:"max_prints"`
	MinIntervalMs  int `mapstructure:"min_interval_ms"`
}

// RoutingConfig holds the ExecutionService routing tables.
type RoutingConfig struct {
	Markets []string `mapstructure:"markets"`
	Books   []string `mapstructure:"books"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Console  bool   `mapstructure:"console"`
	File     bool   `mapstructure:"file"`
	FilePath string `mapstructure:"file_path"`
}

// SectorConfig configures one BucketedSector for risk roll-up.
type SectorConfig struct {
	Name     string   `mapstructure:"name"`
	Products []string `mapstructure:"products"`
}

// Default returns the default configuration: the standard input/output
// file names and routing tables for a working-directory batch run.
func Default() *Config {
	return &Config{
		Files: FilesConfig{
			Prices:     "prices.txt",
			MarketData: "marketdata.txt",
			Trades:     "trades.txt",
			Inquiries:  "inquiries.txt",
			OutDir:     ".",
		},
		GUI: GUIConfig{
			MaxPrints:     100,
			MinIntervalMs: 300,
		},
		Routing: RoutingConfig{
			Markets: []string{"BROKERTEC", "ESPEED", "CME"},
			Books:   []string{"TRSY1", "TRSY2", "TRSY3"},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Console:  true,
			File:     true,
			FilePath: "logs/pipeline.log",
		},
		Sectors: []SectorConfig{
			{Name: "SHORT_END", Products: []string{"T2Y", "T3Y", "T5Y"}},
			{Name: "LONG_END", Products: []string{"T7Y", "T10Y", "T20Y", "T30Y"}},
		},
	}
}

// Load layers an optional config file and PIPELINE_* environment variables
// on top of the defaults.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("PIPELINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", configPath, err)
			}
		} else if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", configPath, err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PIPELINE_OUT_DIR"); v != "" {
		cfg.Files.OutDir = v
	}
	if v := os.Getenv("PIPELINE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	if c.GUI.MaxPrints < 0 {
		return fmt.Errorf("gui.max_prints must be non-negative")
	}
	if c.GUI.MinIntervalMs < 0 {
		return fmt.Errorf("gui.min_interval_ms must be non-negative")
	}
	if len(c.Routing.Markets) == 0 {
		return fmt.Errorf("routing.markets must not be empty")
	}
	if len(c.Routing.Books) == 0 {
		return fmt.Errorf("routing.books must not be empty")
	}
	return nil
}
