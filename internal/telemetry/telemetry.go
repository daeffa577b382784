// Package telemetry configures the process-wide structured logger once,
// at startup, the way the original configures env_logger: default to
// info level, overridable by an environment variable.
package telemetry

import (
	"log/slog"
	"os"
	"strings"
)

// LevelEnvVar is the environment variable that overrides the default
// log level, matching the original's QARROT_LOG_LEVEL.
const LevelEnvVar = "QARROT_LOG_LEVEL"

// Init installs a text-handler slog.Logger as the default logger, with
// its level taken from QARROT_LOG_LEVEL (trace/debug/info/warn/error,
// case-insensitive; unrecognized or unset values default to info — the
// same fallback the original applies to env_logger's filter).
func Init() *slog.Logger {
	level := levelFromEnv(os.Getenv(LevelEnvVar))
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func levelFromEnv(v string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "trace", "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
