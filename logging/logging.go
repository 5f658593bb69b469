package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const (
	// FormatJSON writes one JSON object per record.
	FormatJSON = "json"
	// FormatText writes logfmt-style key=value records.
	FormatText = "text"
	// FormatConsole writes human-readable records, coloured on terminals.
	FormatConsole = "console"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NewLogger creates a new slog.Logger writing to w in the configured format.
// The level is parsed from the config; defaults to INFO if invalid or empty.
// Unknown formats fall back to JSON.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	level := parseLevel(config.Level)

	switch strings.ToLower(config.Format) {
	case FormatText:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			AddSource:   false,
			Level:       level,
			ReplaceAttr: nil,
		}))
	case FormatConsole:
		return slog.New(tint.NewHandler(colorWriter(w), &tint.Options{
			AddSource:   false,
			Level:       level,
			ReplaceAttr: nil,
			TimeFormat:  time.TimeOnly,
			NoColor:     !isTerminal(w),
		}))
	default:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource:   false,
			Level:       level,
			ReplaceAttr: nil,
		}))
	}
}

// colorWriter wraps terminal files so ANSI sequences render on every platform.
func colorWriter(w io.Writer) io.Writer {
	file, isFile := w.(*os.File)
	if !isFile {
		return w
	}

	return colorable.NewColorable(file)
}

func isTerminal(w io.Writer) bool {
	file, isFile := w.(*os.File)
	if !isFile {
		return false
	}

	return isatty.IsTerminal(file.Fd())
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
