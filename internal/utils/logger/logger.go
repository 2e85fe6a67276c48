// Package logger builds the application slog logger for an environment.
package logger

import (
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"mtadmin/internal/app/client/config"
)

// New returns the logger for env: colored text for local, JSON otherwise.
// Logs go to stderr, stdout is reserved for command output.
func New(env string) *slog.Logger {
	return NewWithLevel(env, "")
}

// NewWithLevel is New with an explicit minimum level ("debug", "info",
// "warn", "error"). An empty or unknown level keeps the env default.
func NewWithLevel(env, level string) *slog.Logger {
	lvl, ok := parseLevel(level)

	switch env {
	case config.EnvProd:
		if !ok {
			lvl = slog.LevelInfo
		}
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	case config.EnvDev:
		if !ok {
			lvl = slog.LevelDebug
		}
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	default:
		if !ok {
			lvl = slog.LevelDebug
		}
		return setupPrettySlogLevel(lvl)
	}
}

func setupPrettySlog() *slog.Logger {
	return setupPrettySlogLevel(slog.LevelDebug)
}

func setupPrettySlogLevel(lvl slog.Level) *slog.Logger {
	opts := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: lvl},
	}
	return slog.New(opts.NewPrettyHandler(os.Stderr))
}

func parseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
