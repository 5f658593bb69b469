package middleware

import (
	"net/http"
)

// DefaultMaxRequestSizeBytes is used when no positive limit is configured.
const DefaultMaxRequestSizeBytes int64 = 1 << 20

// MaxRequestSize returns a middleware that limits the size of incoming request
// bodies using http.MaxBytesReader. Handlers that read past the limit receive an
// *http.MaxBytesError and should respond with 413 Request Entity Too Large.
//
// If limit is zero or negative, DefaultMaxRequestSizeBytes is used.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxRequestSizeBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}

			next.ServeHTTP(w, r)
		})
	}
}
