// Package logging configures the process-wide slog logger.
//
// The TUI owns the terminal, so records go to a rotated file in the data
// directory instead of stdout.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/user/cinelist/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

var defaultLogger *slog.Logger

// Init installs a JSON handler writing to the rotated log file and returns a
// closer for the underlying file.
func Init(cfg *config.Config, debug bool) io.Closer {
	rotator := &lumberjack.Logger{
		Filename:   cfg.LogPath(),
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAgeDays,
	}

	level := ParseLevel(cfg.Log.Level)
	if debug {
		level = slog.LevelDebug
	}

	InitWriter(rotator, level)
	return rotator
}

// InitWriter installs a logger on an arbitrary writer. Tests use it with a buffer.
func InitWriter(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
	return defaultLogger
}

// Default returns the configured logger, or a discarding one before Init.
func Default() *slog.Logger {
	if defaultLogger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return defaultLogger
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
