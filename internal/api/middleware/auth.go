package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"hindsight/internal/api/response"
	"hindsight/internal/core"
)

// APIKeyAuth returns middleware that gates the backtest and report routes
// on the X-API-Key header. An empty configured key disables the check, the
// default for local single-user runs.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get("X-API-Key")
			if providedKey == "" {
				response.Error(w, http.StatusUnauthorized,
					core.WrapError(core.ErrUnauthorized, fmt.Errorf("missing X-API-Key header")))
				return
			}

			// Constant-time comparison to prevent timing attacks
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				response.Error(w, http.StatusUnauthorized,
					core.WrapError(core.ErrUnauthorized, fmt.Errorf("key mismatch")))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
