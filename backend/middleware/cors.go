// ABOUTME: CORS middleware for browser clients of the sizing API
// ABOUTME: Echoes allow-listed origins and answers OPTIONS preflight requests

package middleware

import (
	"net/http"
	"slices"
)

// CORSWithConfig returns middleware that admits cross-origin requests from
// the listed origins only. An empty list blocks every cross-origin caller.
// OPTIONS preflight requests get 204 without reaching the wrapped handler.
func CORSWithConfig(allowedOrigins []string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && slices.Contains(allowedOrigins, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next(w, r)
		}
	}
}
