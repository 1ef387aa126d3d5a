package config

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the process logger. Development gets the text handler,
// everything else JSON.
func (c LoggerConfig) NewLogger(env string) *slog.Logger {
	return c.newLogger(env, os.Stdout)
}

func (c LoggerConfig) newLogger(env string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}

	format := c.Format
	if format == "" {
		format = "json"
		if env == "development" {
			format = "text"
		}
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With("service", "dinepay")
}

func (c LoggerConfig) level() slog.Level {
	switch strings.ToLower(c.Level) {
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
