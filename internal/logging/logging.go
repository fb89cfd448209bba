// Package logging builds the hclog loggers used by the CLI and the server.
package logging

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
)

// Level picks the log level for the --verbose and --quiet flags. Quiet wins.
func Level(verbose, quiet bool) hclog.Level {
	switch {
	case quiet:
		return hclog.Error
	case verbose:
		return hclog.Debug
	default:
		return hclog.Info
	}
}

// New returns a named logger writing to stderr.
func New(name string, verbose, quiet bool) hclog.Logger {
	return NewWithOutput(name, os.Stderr, verbose, quiet)
}

// NewWithOutput is New with an explicit writer.
func NewWithOutput(name string, w io.Writer, verbose, quiet bool) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   name,
		Output: w,
		Level:  Level(verbose, quiet),
	})
}
