// Package logging builds the zerolog logger used across locksim.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/illarion/locksim/internal/lockerr"
	"github.com/rs/zerolog"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New returns a logger writing to w at the given level. format is
// "console" for human output or "json" for one JSON object per line.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}

	switch strings.ToLower(format) {
	case "", FormatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case FormatJSON:
	default:
		return zerolog.Nop(), lockerr.Config("logging.New", "unknown log format %q", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// ParseLevel parses a level name. An empty name means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, lockerr.Wrap(lockerr.KindConfig, "logging.ParseLevel", "unknown log level "+level, err)
	}
	return lvl, nil
}
