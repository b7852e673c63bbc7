package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: "127.0.0.1"
  port: 9090
  api_key: "secret"
backtest:
  timeout_minutes: 10
  default_period: "6mo"
collector:
  provider: "yahoo"
strategies:
  mean_reversion:
    enabled: true
    params:
      period: 14
      buy_threshold: 30
  trend_follower:
    enabled: false
archive:
  enabled: true
  type: "localfs"
  path: "/tmp/reports"
metrics:
  enabled: true
  path: "/metrics"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Backtest.DefaultPeriod != "6mo" {
		t.Errorf("Backtest.DefaultPeriod = %q, want 6mo", cfg.Backtest.DefaultPeriod)
	}

	mr, ok := cfg.Strategies["mean_reversion"]
	if !ok {
		t.Fatal("missing mean_reversion strategy")
	}
	if !mr.Enabled {
		t.Error("mean_reversion should be enabled")
	}
	if got := mr.Params["period"]; got != 14 {
		t.Errorf("mean_reversion period = %v, want 14", got)
	}
	if tf := cfg.Strategies["trend_follower"]; tf.Enabled {
		t.Error("trend_follower should be disabled")
	}

	if !cfg.Archive.Enabled || cfg.Archive.Type != "localfs" {
		t.Errorf("Archive = %+v, want enabled localfs", cfg.Archive)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadEnvExpansion(t *testing.T) {
	t.Setenv("HS_TEST_API_KEY", "from-env")
	path := writeConfig(t, `
server:
  port: 8080
  api_key: "${HS_TEST_API_KEY}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.APIKey != "from-env" {
		t.Errorf("Server.APIKey = %q, want from-env", cfg.Server.APIKey)
	}
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults() should validate, got %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Collector.Provider != "yahoo" {
		t.Errorf("default provider = %q, want yahoo", cfg.Collector.Provider)
	}
	for _, name := range []string{
		"mean_reversion", "momentum_breakout", "trend_follower", "ma_crossover", "consensus",
	} {
		if !cfg.Strategies[name].Enabled {
			t.Errorf("%s should be enabled by default", name)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = -1 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"negative timeout", func(c *Config) { c.Backtest.TimeoutMinutes = -1 }, true},
		{"unknown provider", func(c *Config) { c.Collector.Provider = "bloomberg" }, true},
		{"csvfile without path", func(c *Config) { c.Collector.Provider = "csvfile" }, true},
		{"csvfile with path", func(c *Config) {
			c.Collector.Provider = "csvfile"
			c.Collector.CSVPath = "bars.csv"
		}, false},
		{"archive s3 without bucket", func(c *Config) {
			c.Archive.Enabled = true
			c.Archive.Type = "s3"
		}, true},
		{"archive s3 with bucket", func(c *Config) {
			c.Archive.Enabled = true
			c.Archive.Type = "s3"
			c.Archive.S3.Bucket = "reports"
		}, false},
		{"archive unknown type", func(c *Config) {
			c.Archive.Enabled = true
			c.Archive.Type = "ftp"
		}, true},
		{"archive localfs without path", func(c *Config) {
			c.Archive.Enabled = true
			c.Archive.Type = "localfs"
			c.Archive.Path = ""
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
