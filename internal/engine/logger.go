package engine

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates a *slog.Logger for the engine's diagnostics and sets it
// as the default. Format "json" produces structured output; anything else
// is human-readable text. Level is one of debug, info, warn, error
// (case-insensitive), defaulting to info. Output is always os.Stderr so it
// never mixes with the presentation layer.
func NewLogger(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
