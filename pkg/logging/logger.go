// Package logging provides structured logging for labelsync using zerolog.
// Terminals get human-readable console output, everything else gets JSON
// lines, and per-run fields (repository, run id, label) travel on the
// context so that concurrent remote operations stay attributable.
//
// Example usage:
//
//	ctx := logging.WithRepo(ctx, "octo/hello")
//	logging.FromContext(ctx).Info().Msg("Fetching labels")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger is used when a context carries no logger.
var defaultLogger = NewLoggerFromConfig(DefaultConfig())

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
