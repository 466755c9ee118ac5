// Package logging builds the CLI's diagnostic logger. Diagnostics go to
// stderr through hclog so they never mix with command output on stdout.
// The level comes from AEROSTACK_LOG_LEVEL and defaults to warn.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/aerostackdev/cli/internal/branding"
)

// DefaultLevel is used when AEROSTACK_LOG_LEVEL is unset or unrecognised.
const DefaultLevel = hclog.Warn

// New returns a logger named after the CLI writing to w.
func New(w io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   branding.CLIName(),
		Output: w,
		Level:  LevelFromEnv(),
		Color:  hclog.AutoColor,
	})
}

// Default returns a stderr logger.
func Default() hclog.Logger {
	return New(os.Stderr)
}

// LevelFromEnv parses AEROSTACK_LOG_LEVEL.
func LevelFromEnv() hclog.Level {
	raw := strings.TrimSpace(os.Getenv(branding.EnvVar("LOG_LEVEL")))
	if raw == "" {
		return DefaultLevel
	}
	level := hclog.LevelFromString(raw)
	if level == hclog.NoLevel {
		return DefaultLevel
	}
	return level
}
