package main

import (
	"fmt"

	"hindsight/internal/collector"
	"hindsight/internal/collector/csvfile"
	"hindsight/internal/collector/yahoo"
	"hindsight/internal/config"
	"hindsight/internal/strategy"
	"hindsight/internal/strategy/breakout"
	"hindsight/internal/strategy/consensus"
	"hindsight/internal/strategy/macross"
	"hindsight/internal/strategy/meanreversion"
	"hindsight/internal/strategy/trendfollower"
)

// factories lists every strategy this build knows how to construct.
var factories = map[string]strategy.Factory{
	"mean_reversion":    func() strategy.Source { return meanreversion.New() },
	"momentum_breakout": func() strategy.Source { return breakout.New() },
	"trend_follower":    func() strategy.Source { return trendfollower.New() },
	"ma_crossover":      func() strategy.Source { return macross.New(50, 200) },
	"consensus": func() strategy.Source {
		return consensus.New(consensus.WeightedScorer{Scorer: consensus.MomentumScorer{}, Weight: 1})
	},
}

// buildRegistry registers the strategies enabled in config, with config
// params baked into each factory so every instance starts configured.
func buildRegistry(cfg *config.Config) (*strategy.Registry, error) {
	registry := strategy.NewRegistry()

	for name, sc := range cfg.Strategies {
		if !sc.Enabled {
			continue
		}
		base, ok := factories[name]
		if !ok {
			return nil, fmt.Errorf("unknown strategy in config: %s", name)
		}

		// Fail at startup on bad params, not on first use.
		params := sc.Params
		if err := base().Init(strategy.Config{Enabled: true, Params: params}); err != nil {
			return nil, fmt.Errorf("strategy %s: %w", name, err)
		}

		registry.Register(func() strategy.Source {
			s := base()
			// Same params that passed validation above; Init on a fresh
			// instance cannot fail with them.
			if err := s.Init(strategy.Config{Enabled: true, Params: params}); err != nil {
				panic(fmt.Sprintf("strategy %s: validated params rejected: %v", name, err))
			}
			return s
		})
	}

	return registry, nil
}

// buildProvider selects the configured price history source.
func buildProvider(cfg *config.Config) (collector.HistoryProvider, error) {
	switch cfg.Collector.Provider {
	case "", "yahoo":
		return yahoo.New(), nil
	case "csvfile":
		return csvfile.New(cfg.Collector.CSVPath), nil
	default:
		return nil, fmt.Errorf("unknown collector provider: %s", cfg.Collector.Provider)
	}
}

// loadConfig reads the config file if given, falling back to defaults.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
