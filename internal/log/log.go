// Package log wires a console zerolog.Logger for cmd/blend. The
// blending core itself never logs (spec.md §7 — diagnostics are the
// caller's responsibility); this package exists only for the CLI driver
// boundary, the way resoltico-y4's internal/logger wraps zerolog for its
// own command-line entry points.
package log

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a console-writer zerolog.Logger at the given level,
// timestamped, writing to stderr.
func New(level zerolog.Level) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(console).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a CLI --log-level flag value to a zerolog.Level,
// defaulting to Info on an unrecognized string rather than failing.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
