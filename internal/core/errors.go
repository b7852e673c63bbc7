// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Price data errors
	ErrInsufficientData = &Error{Code: "INSUFFICIENT_DATA", Message: "fewer than 2 price bars"}
	ErrInvalidBar       = &Error{Code: "INVALID_BAR", Message: "malformed price bar"}

	// Simulation errors
	ErrInvalidTrade      = &Error{Code: "INVALID_TRADE", Message: "trade entry price must be positive"}
	ErrEngineExhausted   = &Error{Code: "ENGINE_EXHAUSTED", Message: "engine instance already ran"}
	ErrMetricOutOfRange  = &Error{Code: "METRIC_OUT_OF_RANGE", Message: "bounded statistic outside [0, 100]"}
	ErrStrategyNotFound  = &Error{Code: "STRATEGY_NOT_FOUND", Message: "strategy not registered"}

	// Collector errors
	ErrSymbolNotFound  = &Error{Code: "SYMBOL_NOT_FOUND", Message: "symbol not found"}
	ErrCollectorFailed = &Error{Code: "COLLECTOR_FAILED", Message: "collector failed"}

	// API errors
	ErrJobNotFound    = &Error{Code: "JOB_NOT_FOUND", Message: "job not found"}
	ErrReportNotFound = &Error{Code: "REPORT_NOT_FOUND", Message: "archived report not found"}
	ErrUnauthorized   = &Error{Code: "UNAUTHORIZED", Message: "invalid or missing API key"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
