package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// panicBody matches the error payload of the document API.
const panicBody = `{"error":"internal server error"}` + "\n"

// Recovery returns a middleware that turns a panicking handler into a JSON
// 500 response. The panic value and stack go to logger. http.ErrAbortHandler
// is re-raised.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = orDefault(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &responseRecorder{ResponseWriter: w}

			defer func() {
				value := recover()
				if value == nil {
					return
				}

				if err, ok := value.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(value)
				}

				attrs := []any{
					slog.String("panic", fmt.Sprintf("%v", value)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				}

				if reqID := GetRequestID(r.Context()); reqID != "" {
					attrs = append(attrs, slog.String("request_id", reqID))
				}

				if rec.written() {
					logger.Error("panic recovered after response was already written", attrs...)

					return
				}

				logger.Error("panic recovered", attrs...)

				rec.Header().Set("Content-Type", "application/json")
				rec.WriteHeader(http.StatusInternalServerError)
				_, _ = rec.Write([]byte(panicBody))
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
