package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hindsight/internal/collector"
	"hindsight/internal/core"
)

func TestYahoo_ImplementsHistoryProvider(t *testing.T) {
	var _ collector.HistoryProvider = (*Yahoo)(nil)
}

func TestYahoo_Name(t *testing.T) {
	if New().Name() != "yahoo" {
		t.Errorf("expected 'yahoo', got '%s'", New().Name())
	}
}

func TestValidateSymbol(t *testing.T) {
	valid := []string{"AAPL", "MSFT", "0700.HK", "600519.SS"}
	for _, s := range valid {
		if err := validateSymbol(s); err != nil {
			t.Errorf("validateSymbol(%s) = %v, want nil", s, err)
		}
	}

	invalid := []string{"", "../etc/passwd", "SYM BOL", "averyverylongsymbolname"}
	for _, s := range invalid {
		if err := validateSymbol(s); err == nil {
			t.Errorf("validateSymbol(%s) should fail", s)
		}
	}
}

func chartPayload(base int64, rows [][2]float64) string {
	ts := ""
	open := ""
	closeP := ""
	for i, r := range rows {
		if i > 0 {
			ts += ","
			open += ","
			closeP += ","
		}
		ts += fmt.Sprintf("%d", base+int64(i)*86400)
		open += fmt.Sprintf("%g", r[0])
		closeP += fmt.Sprintf("%g", r[1])
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],
		"indicators":{"quote":[{"open":[%s],"close":[%s]}]}}]}}`, ts, open, closeP)
}

func TestYahoo_FetchDaily(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, chartPayload(base, [][2]float64{{100, 102}, {102, 105}, {105, 101}}))
	}))
	defer srv.Close()

	y := New()
	y.baseURL = srv.URL

	bars, err := y.FetchDaily(context.Background(), "AAPL",
		time.Unix(base, 0), time.Unix(base+3*86400, 0))
	if err != nil {
		t.Fatalf("FetchDaily() error = %v", err)
	}

	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}
	if bars[0].Open != 100 || bars[0].Close != 102 {
		t.Errorf("bar[0] = %+v, want open 100 close 102", bars[0])
	}
	if err := core.ValidateSeries(bars); err != nil {
		t.Errorf("fetched series should validate: %v", err)
	}
}

func TestYahoo_FetchDaily_SkipsNullRows(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Unix()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"chart":{"result":[{"timestamp":[%d,%d,%d],
			"indicators":{"quote":[{"open":[100,null,105],"close":[102,null,101]}]}}]}}`,
			base, base+86400, base+2*86400)
	}))
	defer srv.Close()

	y := New()
	y.baseURL = srv.URL

	bars, err := y.FetchDaily(context.Background(), "AAPL", time.Unix(base, 0), time.Unix(base+3*86400, 0))
	if err != nil {
		t.Fatalf("FetchDaily() error = %v", err)
	}
	if len(bars) != 2 {
		t.Errorf("expected null row skipped, got %d bars", len(bars))
	}
}

func TestYahoo_FetchDaily_SymbolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":{"code":"Not Found","description":"No data found"}}}`)
	}))
	defer srv.Close()

	y := New()
	y.baseURL = srv.URL

	_, err := y.FetchDaily(context.Background(), "NOPE", time.Now().AddDate(0, -1, 0), time.Now())
	if !errors.Is(err, core.ErrSymbolNotFound) {
		t.Errorf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestYahoo_FetchDaily_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	y := New()
	y.baseURL = srv.URL

	_, err := y.FetchDaily(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
	if !errors.Is(err, core.ErrCollectorFailed) {
		t.Errorf("expected ErrCollectorFailed, got %v", err)
	}
}

func TestYahoo_FetchDaily_InvalidSymbol(t *testing.T) {
	y := New()
	_, err := y.FetchDaily(context.Background(), "bad symbol", time.Now().AddDate(0, -1, 0), time.Now())
	if !errors.Is(err, core.ErrSymbolNotFound) {
		t.Errorf("expected ErrSymbolNotFound, got %v", err)
	}
}
