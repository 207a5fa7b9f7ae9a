package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console zerolog logger at the given level, falling back to
// info for unknown levels.
func New(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Str("service", "dealdesk").
		Logger()
}
