package middleware

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ulule/limiter/v3"

	"github.com/hadetan/expense-tracking/internal/http/api"
)

// RateLimit throttles requests per client IP. The client IP is taken from RemoteAddr, so chi's
// RealIP middleware should run first when the API sits behind a proxy.
func RateLimit(l *limiter.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := Logger(r.Context())
			ip := l.GetIPKey(r)

			lc, err := l.Get(r.Context(), ip)
			if err != nil {
				logger.Error("failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
				api.Error(w, http.StatusInternalServerError, "Internal server error during rate limit check")
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(lc.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(lc.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(lc.Reset, 10))

			if lc.Reached {
				logger.Warn("rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", lc.Limit))
				api.Error(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
