package config

import (
	"fmt"
	"io"
	"log/slog"
)

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// NewLogger builds a logger writing to w in the configured format.
func NewLogger(w io.Writer, l Logging) (*slog.Logger, error) {
	level, err := ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch l.Format {
	case "console":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", l.Format)
	}
	return slog.New(handler), nil
}

// SetupLogging installs the configured logger as the slog default.
func SetupLogging(w io.Writer, l Logging) error {
	logger, err := NewLogger(w, l)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
