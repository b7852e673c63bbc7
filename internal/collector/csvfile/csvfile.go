// Package csvfile loads daily price bars from a local CSV file, letting
// backtests replay canned series without touching the network.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"hindsight/internal/core"
)

// Loader reads bars from a CSV file with a `date,open,close` header.
// Dates use the ISO-8601 calendar form (2006-01-02).
type Loader struct {
	path string
}

// New creates a loader for the given file path
func New(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Name() string {
	return "csvfile"
}

// FetchDaily reads the file and returns bars inside [start, end].
// The file itself must already be in chronological order.
func (l *Loader) FetchDaily(ctx context.Context, symbol string, start, end time.Time) ([]core.PriceBar, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, core.WrapError(core.ErrCollectorFailed, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3

	header, err := r.Read()
	if err != nil {
		return nil, core.WrapError(core.ErrCollectorFailed, err)
	}
	if !isHeader(header) {
		return nil, core.WrapError(core.ErrCollectorFailed,
			fmt.Errorf("expected date,open,close header, got %v", header))
	}

	var bars []core.PriceBar
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.WrapError(core.ErrCollectorFailed, err)
		}

		bar, err := parseBar(record)
		if err != nil {
			return nil, core.WrapError(core.ErrInvalidBar, err)
		}

		if bar.Date.Before(start) || bar.Date.After(end) {
			continue
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

func isHeader(record []string) bool {
	return len(record) == 3 &&
		strings.EqualFold(strings.TrimSpace(record[0]), "date") &&
		strings.EqualFold(strings.TrimSpace(record[1]), "open") &&
		strings.EqualFold(strings.TrimSpace(record[2]), "close")
}

func parseBar(record []string) (core.PriceBar, error) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
	if err != nil {
		return core.PriceBar{}, fmt.Errorf("parsing date %q: %w", record[0], err)
	}
	open, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil {
		return core.PriceBar{}, fmt.Errorf("parsing open %q: %w", record[1], err)
	}
	closePrice, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return core.PriceBar{}, fmt.Errorf("parsing close %q: %w", record[2], err)
	}
	return core.PriceBar{Date: date, Open: open, Close: closePrice}, nil
}
