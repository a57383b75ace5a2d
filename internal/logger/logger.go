package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/jsersan/ecommerce-backend-pdf/internal/config"
)

// New creates a JSON slog.Logger at the configured level.
func New(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		level = ParseLevel(cfg.LogLevel)
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", "shop"))
}

// ParseLevel maps a textual level to slog, falling back to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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
