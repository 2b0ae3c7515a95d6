package main

import (
	"log/slog"
	"os"
	"strings"
)

// setupLogger builds the process logger from the CLI settings. Unknown
// levels fall back to info, unknown formats to JSON.
func setupLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler).With(
		slog.String("service", appName),
		slog.String("version", Version),
		slog.Int("pid", os.Getpid()),
	)
}
