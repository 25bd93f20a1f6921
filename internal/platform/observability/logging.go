package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogConfig controls the process-wide structured logger.
type LogConfig struct {
	Service string // attached to every record as the "service" attribute
	Level   string // debug, info, warn, error (case-insensitive)
	Format  string // "text" for local development, anything else emits JSON
}

// NewLogger builds the slog.Logger used across the analysis service.
// Records go to stdout as JSON unless text format is requested; at debug
// level source locations are included so pipeline stages can be traced
// back to their call sites.
func NewLogger(cfg LogConfig) *slog.Logger {
	return NewLoggerTo(os.Stdout, cfg)
}

// NewLoggerTo is NewLogger with an explicit destination.
func NewLoggerTo(w io.Writer, cfg LogConfig) *slog.Logger {
	level := levelFromString(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler)
	if cfg.Service != "" {
		logger = logger.With("service", cfg.Service)
	}
	return logger
}

// levelFromString parses a level name, defaulting to info on anything
// unrecognized rather than failing startup over a typo.
func levelFromString(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}
