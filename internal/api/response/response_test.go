package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hindsight/internal/core"
)

func TestJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"hello": "world"}

	JSON(w, http.StatusOK, data)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected application/json content type")
	}

	var resp SuccessResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data == nil {
		t.Error("expected data in response")
	}
	if resp.Meta.Timestamp.IsZero() {
		t.Error("expected timestamp in meta")
	}
}

func TestError_WithCoreError(t *testing.T) {
	w := httptest.NewRecorder()
	err := core.ErrStrategyNotFound

	Error(w, http.StatusNotFound, err)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}

	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != "STRATEGY_NOT_FOUND" {
		t.Errorf("expected STRATEGY_NOT_FOUND, got %s", resp.Error.Code)
	}
}

func TestError_WithCause(t *testing.T) {
	w := httptest.NewRecorder()
	err := core.WrapError(core.ErrCollectorFailed, errors.New("connection refused"))

	Error(w, http.StatusBadGateway, err)

	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != "COLLECTOR_FAILED" {
		t.Errorf("expected COLLECTOR_FAILED, got %s", resp.Error.Code)
	}
	if resp.Error.Cause != "connection refused" {
		t.Errorf("expected cause in response, got %q", resp.Error.Cause)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"strategy not found", core.ErrStrategyNotFound, http.StatusNotFound},
		{"job not found", core.ErrJobNotFound, http.StatusNotFound},
		{"report not found", core.ErrReportNotFound, http.StatusNotFound},
		{"symbol not found", core.ErrSymbolNotFound, http.StatusNotFound},
		{"invalid config", core.ErrConfigInvalid, http.StatusBadRequest},
		{"missing config", core.ErrConfigMissing, http.StatusBadRequest},
		{"insufficient data", core.ErrInsufficientData, http.StatusBadRequest},
		{"unauthorized", core.ErrUnauthorized, http.StatusUnauthorized},
		{"collector failed", core.ErrCollectorFailed, http.StatusBadGateway},
		{"engine exhausted", core.ErrEngineExhausted, http.StatusInternalServerError},
		{"wrapped", core.WrapError(core.ErrJobNotFound, errors.New("gone")), http.StatusNotFound},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusFor(tt.err); got != tt.want {
				t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestError_WithStandardError(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusInternalServerError, errors.New("boom"))

	var resp ErrorResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Error.Code != "INTERNAL_ERROR" {
		t.Errorf("expected INTERNAL_ERROR, got %s", resp.Error.Code)
	}
	if resp.Error.Cause != "" {
		t.Error("internal errors should not leak causes")
	}
}
