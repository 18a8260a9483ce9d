// ABOUTME: Request body size limit for JSON endpoints
// ABOUTME: Rejects oversized bodies up front and caps streamed ones

package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
)

// LimitBody returns middleware that caps request bodies at maxBytes.
// Requests declaring a larger Content-Length get 413 immediately; bodies
// without a length fail on read once the cap is crossed.
func LimitBody(maxBytes int64) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				slog.Warn("Request body too large",
					"path", sanitizePath(r.URL.Path),
					"content_length", r.ContentLength,
					"limit", maxBytes,
				)
				writeJSONError(w, fmt.Sprintf("Request body exceeds %d bytes", maxBytes), http.StatusRequestEntityTooLarge)
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next(w, r)
		}
	}
}
