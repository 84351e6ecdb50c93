package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"
)

// RequireAdmin gates destructive endpoints (user deletion, CSV export)
// behind a shared secret carried in the X-Admin-Secret header. When no
// secret is configured the middleware is a no-op — the API stays open, as
// it historically was, and main logs a warning at startup instead.
//
// The comparison is constant-time; with a single static secret that is
// cheap to get right.
func RequireAdmin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-Admin-Secret")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]any{
					"error":     "Admin access required",
					"timestamp": time.Now().UTC().Format(time.RFC3339),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
