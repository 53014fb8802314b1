// Package logging configures the debug log stream. The store and discovery
// client swallow failures by contract, so this stream is the only place
// those failures are visible.
package logging

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger tagged with component. Logging is disabled unless
// CCI_DEBUG is set to a non-empty value, in which case debug output goes to
// stderr.
func New(component string) zerolog.Logger {
	if os.Getenv("CCI_DEBUG") == "" {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Str("component", component).
		Logger()
}
