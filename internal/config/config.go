// Package config handles application configuration and setup
package config

import (
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings. Logs are written
// to stderr, stdout is reserved for the screen dump and the listing.
func CreateLogger(debug, quiet bool) *log.Logger {
	return newLogger(os.Stderr, debug, quiet)
}

func newLogger(w io.Writer, debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = w
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
