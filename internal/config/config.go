package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"hindsight/internal/core"
)

type Config struct {
	Server     ServerConfig              `mapstructure:"server"`
	Backtest   BacktestConfig            `mapstructure:"backtest"`
	Collector  CollectorConfig           `mapstructure:"collector"`
	Strategies map[string]StrategyConfig `mapstructure:"strategies"`
	Archive    ArchiveConfig             `mapstructure:"archive"`
	Metrics    MetricsConfig             `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	APIKey      string `mapstructure:"api_key"`
	JobTTLHours int    `mapstructure:"job_ttl_hours"`
	MaxJobs     int    `mapstructure:"max_jobs"`
}

// BacktestConfig bounds a single simulation run.
type BacktestConfig struct {
	TimeoutMinutes int    `mapstructure:"timeout_minutes"`
	DefaultPeriod  string `mapstructure:"default_period"`
}

type CollectorConfig struct {
	Provider string `mapstructure:"provider"` // "yahoo" or "csvfile"
	CSVPath  string `mapstructure:"csv_path"` // For csvfile
}

type StrategyConfig struct {
	Enabled bool           `mapstructure:"enabled"`
	Params  map[string]any `mapstructure:"params"`
}

// ArchiveConfig selects where completed reports are persisted.
type ArchiveConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Type    string   `mapstructure:"type"` // "localfs" or "s3"
	Path    string   `mapstructure:"path"` // For localfs
	S3      S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			JobTTLHours: 1,
			MaxJobs:     100,
		},
		Backtest: BacktestConfig{
			TimeoutMinutes: 5,
			DefaultPeriod:  "1y",
		},
		Collector: CollectorConfig{
			Provider: "yahoo",
		},
		Strategies: map[string]StrategyConfig{
			"mean_reversion":    {Enabled: true},
			"momentum_breakout": {Enabled: true},
			"trend_follower":    {Enabled: true},
			"ma_crossover":      {Enabled: true},
			"consensus":         {Enabled: true},
		},
		Archive: ArchiveConfig{
			Type: "localfs",
			Path: "data/reports",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("invalid port: %d", c.Server.Port))
	}

	if c.Backtest.TimeoutMinutes < 0 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("timeout_minutes cannot be negative, got %d", c.Backtest.TimeoutMinutes))
	}

	switch c.Collector.Provider {
	case "", "yahoo":
	case "csvfile":
		if c.Collector.CSVPath == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("csv_path required when provider is csvfile"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown collector provider: %s", c.Collector.Provider))
	}

	if c.Archive.Enabled {
		switch c.Archive.Type {
		case "localfs":
			if c.Archive.Path == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("archive path required for localfs"))
			}
		case "s3":
			if c.Archive.S3.Bucket == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("s3 bucket required when archive type is s3"))
			}
		default:
			return core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("unknown archive type: %s", c.Archive.Type))
		}
	}

	return nil
}
