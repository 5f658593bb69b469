package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// RequestIDHeader is the HTTP header used for request IDs.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength is the maximum allowed length for an externally-provided request ID.
const maxRequestIDLength = 128

type requestIDKeyType struct{}

//nolint:gochecknoglobals
var requestIDKey = requestIDKeyType{}

// RequestID returns a middleware that tags each request with an ID.
// A well-formed incoming X-Request-ID is kept, otherwise a random UUID is generated.
// The ID is echoed in the response header and stored in the request context.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(RequestIDHeader)
			if !validRequestID(reqID) {
				reqID = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, reqID)

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, reqID)))
		})
	}
}

// GetRequestID returns the request ID stored in ctx, or "" if there is none.
func GetRequestID(ctx context.Context) string {
	reqID, _ := ctx.Value(requestIDKey).(string)

	return reqID
}

func validRequestID(reqID string) bool {
	if reqID == "" || len(reqID) > maxRequestIDLength {
		return false
	}

	for _, char := range reqID {
		if char < 0x21 || char > 0x7e {
			return false
		}
	}

	return true
}
