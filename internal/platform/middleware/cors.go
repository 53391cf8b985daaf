package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// preflight response headers, mirrored from the CORS policy below.
const (
	preflightMethods = "GET, POST, PUT, DELETE, OPTIONS, PATCH"
	preflightHeaders = "Accept, Authorization, Content-Type, X-Requested-With"
	preflightMaxAge  = "86400"
)

// Preflight answers CORS preflight requests for API paths before any other
// path matching runs. Routers that canonicalize paths (trailing-slash
// redirects, method matching) would otherwise answer OPTIONS with a redirect
// or 405, which browsers treat as a failed preflight.
func Preflight(pathPrefixes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions && matchesPrefix(r.URL.Path, pathPrefixes) {
				h := w.Header()
				origin := r.Header.Get("Origin")
				if origin == "" {
					origin = "*"
				}
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", preflightMethods)
				h.Set("Access-Control-Allow-Headers", preflightHeaders)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Max-Age", preflightMaxAge)
				h.Add("Vary", "Origin")
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func matchesPrefix(path string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// CORS returns a middleware that applies the cross-origin policy for
// non-preflight requests. Preflight OPTIONS requests are already answered by
// Preflight, which must be installed ahead of this in the stack.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Requested-With",
		},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	})
}
