// Package logging configures the zerolog logger used across Prism.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options control logger construction.
type Options struct {
	// Level is the minimum level to emit (debug, info, warn, error).
	// Unknown values fall back to info.
	Level string

	// Format is "console" or "json". Console is the default.
	Format string

	// Writer overrides the output destination. Defaults to stderr.
	Writer io.Writer
}

// New builds a logger from options.
func New(opts Options) zerolog.Logger {
	level := parseLevel(opts.Level)

	var out io.Writer = os.Stderr
	if opts.Writer != nil {
		out = opts.Writer
	}

	if strings.ToLower(opts.Format) != "json" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "trace":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}
