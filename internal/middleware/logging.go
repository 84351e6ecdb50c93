// Package middleware contains HTTP middleware: request logging, CORS,
// rate limiting and the optional admin gate. Each follows the standard
// func(http.Handler) http.Handler wrapping pattern so chi can chain them.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture the status code and
// bytes written — the standard library doesn't expose either after the
// handler runs. It also injects X-Response-Time just before headers go out,
// the last moment the header can still be set.
type responseWriter struct {
	http.ResponseWriter
	start       time.Time
	statusCode  int
	written     int64
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.Header().Set("X-Response-Time",
			fmt.Sprintf("%dms", time.Since(rw.start).Milliseconds()))
		rw.wroteHeader = true
	}
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Logger logs each completed request with structured fields. The dashboard
// surfaces the X-Response-Time header in its network panel.
func Logger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := &responseWriter{
				ResponseWriter: w,
				start:          time.Now(),
				statusCode:     http.StatusOK, // default if WriteHeader is never called
			}

			next.ServeHTTP(wrapped, r)

			logger.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("ip", r.RemoteAddr),
				slog.Int("status", wrapped.statusCode),
				slog.Duration("duration", time.Since(wrapped.start)),
				slog.Int64("bytes", wrapped.written),
			)
		})
	}
}
