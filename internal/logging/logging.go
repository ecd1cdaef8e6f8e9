// Package logging builds the slog loggers used across the host and worker.
package logging

import (
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// New creates a logger writing to stderr. Format is "console" (tint, the
// default) or "json"; level is one of debug, info, warn, error.
func New(level, format string) *slog.Logger {
	lvl := parseLevel(level)

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	default:
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lvl,
			TimeFormat: time.TimeOnly,
		})
	}

	return slog.New(handler)
}

// FromEnv creates a logger configured by JOB_HUNTER_LOG_LEVEL and
// JOB_HUNTER_LOG_FORMAT.
func FromEnv() *slog.Logger {
	return New(os.Getenv("JOB_HUNTER_LOG_LEVEL"), os.Getenv("JOB_HUNTER_LOG_FORMAT"))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
