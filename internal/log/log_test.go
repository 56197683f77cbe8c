package log

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevelKnown(t *testing.T) {
	if got := ParseLevel("debug"); got != zerolog.DebugLevel {
		t.Fatalf("ParseLevel(debug) = %v, want DebugLevel", got)
	}
	if got := ParseLevel("warn"); got != zerolog.WarnLevel {
		t.Fatalf("ParseLevel(warn) = %v, want WarnLevel", got)
	}
}

func TestParseLevelUnknownDefaultsToInfo(t *testing.T) {
	if got := ParseLevel("not-a-level"); got != zerolog.InfoLevel {
		t.Fatalf("ParseLevel(garbage) = %v, want InfoLevel", got)
	}
}

func TestNewReturnsUsableLogger(t *testing.T) {
	logger := New(zerolog.InfoLevel)
	logger.Info().Msg("smoke test")
}
