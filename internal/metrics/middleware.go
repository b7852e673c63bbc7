package metrics

import (
	"net/http"
	"strings"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// labelPath collapses per-resource URL segments so the path label stays
// bounded: every job-status poll counts under /api/backtest/{id} instead
// of one series per job UUID, and archived-report routes count under
// /api/reports/{symbol}.
func labelPath(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/backtest/"):
		return "/api/backtest/{id}"
	case strings.HasPrefix(path, "/api/reports/"):
		return "/api/reports/{symbol}"
	default:
		return path
	}
}

// HTTPMiddleware returns middleware that records request counts, latency
// and in-flight gauge for every route of the backtest API.
func HTTPMiddleware(reg *Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reg.InFlightInc()
			defer reg.InFlightDec()

			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			duration := time.Since(start).Seconds()
			reg.RecordRequest(r.Method, labelPath(r.URL.Path), rw.statusCode, duration)
		})
	}
}
