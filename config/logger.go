package config

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger returns the application logger for the given environment.
// Production emits JSON for log shipping; everything else emits text.
// MELODY_LOG_LEVEL (or LOG_LEVEL) selects debug, info, warn, or error.
// Every record carries a service attribute so aggregated logs from the
// API and future workers stay distinguishable.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel()}

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler).With("service", "melodymesh")
}

func logLevel() slog.Level {
	s := os.Getenv("MELODY_LOG_LEVEL")
	if s == "" {
		s = os.Getenv("LOG_LEVEL")
	}
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
