// Package logging builds the zerolog logger shared by the Focus commands.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xvierd/focus-cli/internal/config"
)

// New returns a logger writing to stderr. Stdout stays reserved for
// command output and the MCP stdio transport.
func New(cfg config.LoggingConfig) zerolog.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter returns a logger writing to out.
func NewWithWriter(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	level := ParseLevel(cfg.Level)

	if cfg.Format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).
			Level(level).With().Timestamp().Logger()
	}

	// Default to JSON
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// ParseLevel maps a config level name to a zerolog level.
// Unknown names fall back to warn.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
