// Package logging configures the global zerolog logger used by the
// long-running janus commands (stream, watch).
//
// The short-lived dev commands print directly to stdout/stderr like any
// CLI; the streaming commands instead emit structured, timestamped log
// lines so their output is useful when captured by a supervisor.
package logging

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Log is the package-global logger configured by Init.
var Log zerolog.Logger

// Init initializes the global logger. level can be "debug", "info",
// "warn", or "error"; unknown values fall back to info. When console is
// true, output is human-formatted for a terminal instead of raw JSON.
func Init(level string, console bool) {
	l := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		l = zerolog.DebugLevel
	case "info":
		l = zerolog.InfoLevel
	case "warn":
		l = zerolog.WarnLevel
	case "error":
		l = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(l)

	if console {
		Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		return
	}
	Log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Get returns a pointer to the package-global logger.
func Get() *zerolog.Logger {
	return &Log
}
