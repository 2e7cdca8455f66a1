package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger for the given environment. Development
// gets human-readable text at debug level; production gets JSON at info.
func New(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
}
