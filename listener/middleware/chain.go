package middleware

import (
	"log/slog"
	"net/http"
)

// Limits bounds what a single listener accepts.
type Limits struct {
	MaxBodyBytes      int64
	RequestsPerSecond float64
	Burst             int
}

// Chain wraps handler with RequestID, Logging, Recovery, RateLimit and
// MaxRequestSize, outermost first. A nil logger means slog.Default().
func Chain(handler http.Handler, logger *slog.Logger, limits Limits) http.Handler {
	wrapped := MaxRequestSize(limits.MaxBodyBytes)(handler)
	wrapped = RateLimit(limits.RequestsPerSecond, limits.Burst)(wrapped)
	wrapped = Recovery(logger)(wrapped)
	wrapped = Logging(logger)(wrapped)

	return RequestID()(wrapped)
}
