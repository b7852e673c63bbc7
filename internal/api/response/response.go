// Package response defines the JSON envelopes of the backtest API and the
// mapping from domain error codes to HTTP statuses.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"hindsight/internal/core"
)

// Meta contains response metadata.
type Meta struct {
	Timestamp time.Time `json:"timestamp"`
}

// SuccessResponse wraps every successful payload: a job ticket, a job
// status with its report, a strategy listing, an archive listing.
type SuccessResponse struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// ErrorDetail carries a core error code to the client.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   string `json:"cause,omitempty"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// JSON writes a success response with data.
func JSON(w http.ResponseWriter, status int, data any) {
	resp := SuccessResponse{
		Data: data,
		Meta: Meta{Timestamp: time.Now().UTC()},
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// Error writes an error response. Structured core errors surface their
// code and cause; anything else degrades to an opaque INTERNAL_ERROR so
// internals never leak to the client.
func Error(w http.ResponseWriter, status int, err error) {
	detail := ErrorDetail{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
	}

	var coreErr *core.Error
	if errors.As(err, &coreErr) {
		detail.Code = coreErr.Code
		detail.Message = coreErr.Message
		if coreErr.Cause != nil {
			detail.Cause = coreErr.Cause.Error()
		}
	}

	resp := ErrorResponse{Error: detail}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// StatusFor maps a domain error to its HTTP status: lookup failures are
// 404, malformed requests and bad data are 400, upstream collector
// failures are 502, everything unrecognized is 500.
func StatusFor(err error) int {
	var coreErr *core.Error
	if !errors.As(err, &coreErr) {
		return http.StatusInternalServerError
	}

	switch coreErr.Code {
	case core.ErrStrategyNotFound.Code, core.ErrJobNotFound.Code,
		core.ErrReportNotFound.Code, core.ErrSymbolNotFound.Code:
		return http.StatusNotFound
	case core.ErrConfigInvalid.Code, core.ErrConfigMissing.Code,
		core.ErrInsufficientData.Code, core.ErrInvalidBar.Code:
		return http.StatusBadRequest
	case core.ErrUnauthorized.Code:
		return http.StatusUnauthorized
	case core.ErrCollectorFailed.Code:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
