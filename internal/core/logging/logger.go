// Package logging provides component loggers and log context helpers.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component derives a logger for one of skim's components (ledger, tui,
// commands) from the process logger, tagging every event with a "cmp" field.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}
