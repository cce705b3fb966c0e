package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger configures the global zerolog logger.
//
// level is parsed with zerolog.ParseLevel and defaults to info on error.
// pretty selects a human-readable console writer on stderr; otherwise JSON lines are written.
func InitLogger(level string, pretty bool) zerolog.Logger {
	return InitLoggerTo(os.Stderr, level, pretty)
}

// InitLoggerTo is InitLogger with an explicit writer, for tests.
func InitLoggerTo(w io.Writer, level string, pretty bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := w
	if pretty {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	log.Logger = zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return log.Logger
}
