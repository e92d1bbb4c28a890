package middleware

import (
	"context"
	"net/http"
	"time"
)

// DefaultRequestTimeout bounds each request when no explicit timeout is given
const DefaultRequestTimeout = 30 * time.Second

// Timeout enforces a deadline on request handlers. The request context is
// cancelled at the deadline so in-flight database and LLM calls abort, and
// the client gets a timeout response instead of a hung connection.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		handler := http.TimeoutHandler(next, timeout, "Request Timeout")

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			handler.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
