// Package logging configures the process-wide slog logger.
//
// All diagnostics go to stderr so generated documents written to stdout are
// never interleaved with log lines.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel overrides the default log level when set.
const EnvLogLevel = "LOG_LEVEL"

// SetDefaultStructuredLogger installs a JSON logger on stderr that tags every
// record with the tool name and version.
func SetDefaultStructuredLogger(name, version string) {
	SetDefaultCLILogger(LevelFromEnv(slog.LevelInfo), true, name, version)
}

// SetDefaultCLILogger installs the default logger for command line use.
// Text output drops timestamps; JSON output keeps them.
func SetDefaultCLILogger(level slog.Level, asJSON bool, name, version string) {
	slog.SetDefault(NewLogger(os.Stderr, level, asJSON, name, version))
}

// NewLogger builds a logger writing to w.
func NewLogger(w io.Writer, level slog.Level, asJSON bool, name, version string) *slog.Logger {
	var h slog.Handler
	if asJSON {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
		return slog.New(h).With("name", name, "version", version)
	}

	h = slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(h)
}

// ParseLevel converts a level name into a slog.Level.
// The second return value is false for empty or unknown names.
func ParseLevel(raw string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug", "trace":
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

// LevelFromEnv returns the level named by LOG_LEVEL, or def.
func LevelFromEnv(def slog.Level) slog.Level {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		return lvl
	}
	return def
}
