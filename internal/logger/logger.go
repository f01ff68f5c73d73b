// Package logger installs the process-wide slog handler. Reports go to
// stdout, so logs always go to stderr to keep piped output clean.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Init installs a JSON handler on stderr. LOG_LEVEL selects the
// minimum level (debug, info, warn, error); anything else means info.
func Init() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	})))
}

func parseLevel(s string) slog.Level {
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
