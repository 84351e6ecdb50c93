package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/legalforensics/leadcapture/internal/limiter"
)

// RateLimit rejects requests over the per-IP budget with a 429. It is
// applied only to the endpoints that cost something (Hunter.io quota,
// store writes); reads stay unthrottled, matching the previous deployment.
//
// The identifier is the client IP as normalized by chi's RealIP middleware,
// which must run earlier in the chain for X-Forwarded-For to be honored.
func RateLimit(l *limiter.Limiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			if !l.Allow(ip) {
				logger.Warn("rate limit exceeded", slog.String("ip", ip))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]any{
					"error":     "Rate limit exceeded. Please try again later.",
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr. RealIP has already replaced it
// with the forwarded address when one was present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RealIP leaves bare IPs without a port.
		return r.RemoteAddr
	}
	return host
}
