package middleware

import (
	"net/http"

	"contentcraft-api/internal/config"
)

// CORS applies the environment-specific origin allow-list and answers
// preflight requests. Disallowed origins get the literal "null" header
// instead of having their origin echoed back.
func CORS(cfg *config.CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowOrigin := "*"
			if origin != "" {
				if cfg.OriginAllowed(origin) {
					allowOrigin = origin
				} else {
					allowOrigin = "null"
				}
			}

			w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			w.Header().Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
