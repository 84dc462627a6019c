package middleware

import (
	"net"
	"net/http"

	"domsetbench/internal/apperror"
	"domsetbench/internal/httpapi/respond"
	"domsetbench/internal/ratelimit"
)

// RateLimit throttles write endpoints per client IP. A nil limiter
// (rate limiting disabled in config) is a pass-through.
func RateLimit(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				respond.Error(w, apperror.Wrap(err, apperror.CodeDependency, "rate limiter unavailable"))
				return
			}
			if !allowed {
				respond.Error(w, apperror.New(apperror.CodeConflict, "rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
