package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"hindsight/internal/api/response"
	"hindsight/internal/core"
	"hindsight/internal/storage/archive"
)

// ReportsHandler serves archived backtest reports: listing the reports
// kept for a symbol, returning a single report, and deleting one.
type ReportsHandler struct {
	reports *archive.Reports
}

// NewReportsHandler creates a handler over the report archive.
func NewReportsHandler(reports *archive.Reports) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

// ListSymbol returns the archive keys of every report for a symbol.
func (h *ReportsHandler) ListSymbol(w http.ResponseWriter, r *http.Request, symbol string) {
	keys, err := h.reports.ListSymbol(r.Context(), symbol)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err)
		return
	}
	if keys == nil {
		keys = []string{}
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"symbol":  symbol,
		"reports": keys,
	})
}

// Get returns one archived report by its key.
func (h *ReportsHandler) Get(w http.ResponseWriter, r *http.Request, symbol, file string) {
	key := reportKey(symbol, file)

	exists, err := h.reports.Exists(r.Context(), key)
	if err == nil && !exists {
		err = core.WrapError(core.ErrReportNotFound, fmt.Errorf("key %s", key))
	}
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	data, err := h.reports.Load(r.Context(), key)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	// Archived reports are stored as the final JSON document, so they
	// embed into the envelope without re-marshaling.
	response.JSON(w, http.StatusOK, json.RawMessage(data))
}

// Delete removes one archived report by its key.
func (h *ReportsHandler) Delete(w http.ResponseWriter, r *http.Request, symbol, file string) {
	key := reportKey(symbol, file)

	if err := h.reports.Delete(r.Context(), key); err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"deleted": key})
}

func reportKey(symbol, file string) string {
	return "reports/" + symbol + "/" + strings.TrimSuffix(file, "/")
}
