// Package logging provides structured logging using Go's standard library log/slog.
// It writes JSON by default, plain text on request, and colourised console output
// via github.com/lmittmann/tint when the target is a terminal.
package logging
