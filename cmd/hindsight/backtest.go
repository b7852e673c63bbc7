package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hindsight/internal/backtest"
	"hindsight/internal/collector"
	"hindsight/internal/collector/csvfile"
	"hindsight/internal/logger"
	"hindsight/internal/storage/archive"
	"hindsight/internal/strategy"
)

var (
	backtestSymbol  string
	backtestFrom    string
	backtestTo      string
	backtestPeriod  string
	backtestCSV     string
	backtestArchive bool
)

var backtestCmd = &cobra.Command{
	Use:   "backtest [strategy]",
	Short: "Run a backtest on a strategy",
	Long:  "Run a strategy against historical data and show performance statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestSymbol, "symbol", "", "Symbol to backtest (required)")
	backtestCmd.Flags().StringVar(&backtestFrom, "from", "", "Start date YYYY-MM-DD")
	backtestCmd.Flags().StringVar(&backtestTo, "to", "", "End date YYYY-MM-DD")
	backtestCmd.Flags().StringVar(&backtestPeriod, "period", "", "Lookback preset: 1mo, 6mo, 1y, 5y")
	backtestCmd.Flags().StringVar(&backtestCSV, "csv", "", "Read bars from a CSV file instead of the configured provider")
	backtestCmd.Flags().BoolVar(&backtestArchive, "archive", false, "Archive the report after the run")

	backtestCmd.MarkFlagRequired("symbol")

	rootCmd.AddCommand(backtestCmd)
}

func backtestRange() (time.Time, time.Time, error) {
	if backtestPeriod != "" {
		start, end, ok := collector.PeriodRange(backtestPeriod, time.Now().UTC())
		if !ok {
			return time.Time{}, time.Time{}, fmt.Errorf("unknown period: %s", backtestPeriod)
		}
		return start, end, nil
	}

	if backtestFrom == "" || backtestTo == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("either --period or both --from and --to are required")
	}
	start, err := time.Parse("2006-01-02", backtestFrom)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date format (expected YYYY-MM-DD): %w", err)
	}
	end, err := time.Parse("2006-01-02", backtestTo)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date format (expected YYYY-MM-DD): %w", err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date must be after start date")
	}
	return start, end, nil
}

func runBacktest(cmd *cobra.Command, args []string) error {
	strategyName := args[0]

	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	start, end, err := backtestRange()
	if err != nil {
		return err
	}

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	src, err := registry.Get(strategyName)
	if err != nil {
		return fmt.Errorf("strategy %q: %w (available: %v)", strategyName, err, registry.Names())
	}

	var provider collector.HistoryProvider
	if backtestCSV != "" {
		provider = csvfile.New(backtestCSV)
	} else {
		provider, err = buildProvider(cfg)
		if err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Backtest.TimeoutMinutes)*time.Minute)
	defer cancel()

	bars, err := provider.FetchDaily(ctx, backtestSymbol, start, end)
	if err != nil {
		return fmt.Errorf("fetching history: %w", err)
	}

	engine, err := backtest.New(backtestSymbol, bars, src)
	if err != nil {
		return err
	}
	report, err := engine.Run()
	if err != nil {
		return err
	}

	printReport(src, report)

	if backtestArchive {
		if !cfg.Archive.Enabled {
			return fmt.Errorf("--archive given but archive is disabled in config")
		}
		reports, err := archive.NewFromConfig(cfg.Archive)
		if err != nil {
			return fmt.Errorf("creating report archive: %w", err)
		}
		key, err := reports.Save(ctx, src.Name(), report)
		if err != nil {
			return fmt.Errorf("archiving report: %w", err)
		}
		fmt.Printf("\nReport archived to %s (%s)\n", key, reports.Backend())
	}

	return nil
}

func printReport(src strategy.Source, r *backtest.Report) {
	fmt.Println("=== hindsight backtest ===")
	fmt.Printf("Strategy: %s\n", src.Name())
	fmt.Printf("Symbol:   %s\n", r.Symbol)
	fmt.Printf("Period:   %s to %s\n", r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"))
	fmt.Println()

	fmt.Printf("Trades:          %d\n", r.NumTrades)
	fmt.Printf("Total return:    %+.2f%%\n", r.TotalReturnPct)
	fmt.Printf("Buy & hold:      %+.2f%%\n", r.BuyAndHoldReturnPct)
	fmt.Printf("Win rate:        %.1f%%\n", r.WinRatePct)
	fmt.Printf("Avg duration:    %.1f days\n", r.AvgTradeDurationDays)
	fmt.Printf("Time in market:  %.1f%%\n", r.TimeInMarketPct)
	fmt.Printf("Max drawdown:    %.2f%%\n", r.MaxDrawdownPct)

	if r.NumTrades == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Entry       Exit        In        Out       Return    Days")
	for _, t := range r.Trades {
		fmt.Printf("%-11s %-11s %-9.2f %-9.2f %+8.2f%% %5d\n",
			t.EntryDate.Format("2006-01-02"), t.ExitDate.Format("2006-01-02"),
			t.EntryPrice, t.ExitPrice, t.ReturnPct, t.DurationDays)
	}
}
