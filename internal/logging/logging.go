// Package logging builds the structured loggers used across Cosmic Tilt.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix is shown on every log line.
const Prefix = "cosmictilt"

// ParseLevel converts error|warn|info|debug to a log.Level.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return log.ErrorLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "info", "":
		return log.InfoLevel, nil
	case "debug":
		return log.DebugLevel, nil
	default:
		return log.InfoLevel, fmt.Errorf("invalid log level: %s (must be error, warn, info, or debug)", level)
	}
}

// New creates a timestamped logger writing to w at the given level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          Prefix,
		Level:           level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
