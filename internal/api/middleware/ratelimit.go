package middleware

import (
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/forkcast/forkcast/internal/ratelimit"
	"github.com/forkcast/forkcast/pkg/problem"
)

// RateLimit enforces a fixed-window ceiling per caller on the wrapped
// routes. The identifier is the userId path parameter when present, then
// the client IP, then "anonymous". Rejected requests get a 429 problem
// with a Retry-After hint.
func RateLimit(limiter *ratelimit.Limiter, feature string, limit ratelimit.Limit) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := identify(r)
			result := limiter.Check(feature+":"+id, limit)
			if !result.Allowed {
				retryAfter := int(result.ResetIn.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				problem.TooManyRequests(
					fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", retryAfter),
					retryAfter,
				).Write(w)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
			next.ServeHTTP(w, r)
		})
	}
}

func identify(r *http.Request) string {
	if userID := chi.URLParam(r, "userId"); userID != "" {
		return userID
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return "anonymous"
}
