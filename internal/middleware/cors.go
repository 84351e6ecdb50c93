package middleware

import "net/http"

// corsHeaders is the permissive header set every response carries. The API
// is consumed cross-origin by the landing page and the bookmarklet from
// arbitrary sites, so the origin is a wildcard on purpose. The security
// headers ride along because this is the single choke point all responses
// pass through.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type, Authorization, X-Requested-With, X-Admin-Secret",
	"Access-Control-Max-Age":       "86400",
	"X-Content-Type-Options":       "nosniff",
	"X-Frame-Options":              "DENY",
	"X-XSS-Protection":             "1; mode=block",
}

// CORS applies the permissive header set to every response and short-
// circuits OPTIONS preflights with a bare 200.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, v := range corsHeaders {
			w.Header().Set(k, v)
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
