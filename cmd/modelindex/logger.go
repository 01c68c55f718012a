package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger logs to w, which is stderr outside of tests so stdout stays
// free for --dry-run output and the MCP transport.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "modelindex",
		Level:  log.InfoLevel,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
