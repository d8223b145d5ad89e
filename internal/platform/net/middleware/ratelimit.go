package middleware

import (
	stdjson "encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimit gates all wrapped routes at limit requests per window per client IP.
// limit <= 0 disables the gate (identity middleware).
func RateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = stdjson.NewEncoder(w).Encode(map[string]string{"error": "Too many requests."})
		}),
	)
}
