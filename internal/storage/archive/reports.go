package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hindsight/internal/backtest"
	"hindsight/internal/config"
	"hindsight/internal/core"
)

// Reports persists completed backtest reports to a Storage backend under
// a stable key layout: reports/{symbol}/{strategy}_{start}_{end}.json.
type Reports struct {
	store   Storage
	backend string
}

// NewReports wraps a storage backend for report persistence.
func NewReports(store Storage, backend string) *Reports {
	return &Reports{store: store, backend: backend}
}

// NewFromConfig builds the configured storage backend and wraps it.
func NewFromConfig(cfg config.ArchiveConfig) (*Reports, error) {
	switch cfg.Type {
	case "localfs":
		fs, err := NewLocalFS(cfg.Path)
		if err != nil {
			return nil, err
		}
		return NewReports(fs, "localfs"), nil
	case "s3":
		s3s, err := NewS3(S3Config{
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Prefix:    cfg.S3.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return NewReports(s3s, "s3"), nil
	default:
		return nil, core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown archive type: %s", cfg.Type))
	}
}

// Backend names the underlying storage type.
func (r *Reports) Backend() string {
	return r.backend
}

// ReportKey builds the storage path for a report.
func ReportKey(symbol, strategy string, start, end time.Time) string {
	return fmt.Sprintf("reports/%s/%s_%s_%s.json",
		symbol, strategy,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
}

// Save writes a report under its key. Saving twice for the same symbol,
// strategy and range overwrites the previous report.
func (r *Reports) Save(ctx context.Context, strategy string, report *backtest.Report) (string, error) {
	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshaling report: %w", err)
	}

	key := ReportKey(report.Symbol, strategy, report.StartDate, report.EndDate)
	if err := r.store.Write(ctx, key, data); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return key, nil
}

// Load reads back the raw report JSON at a key.
func (r *Reports) Load(ctx context.Context, key string) ([]byte, error) {
	return r.store.Read(ctx, key)
}

// ListSymbol returns the keys of all archived reports for a symbol.
func (r *Reports) ListSymbol(ctx context.Context, symbol string) ([]string, error) {
	return r.store.List(ctx, "reports/"+symbol)
}

// Exists reports whether a report is archived under the key.
func (r *Reports) Exists(ctx context.Context, key string) (bool, error) {
	return r.store.Exists(ctx, key)
}

// Delete removes an archived report. Fails with ErrReportNotFound when
// the key holds nothing.
func (r *Reports) Delete(ctx context.Context, key string) error {
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return core.WrapError(core.ErrReportNotFound, fmt.Errorf("key %s", key))
	}
	return r.store.Delete(ctx, key)
}
