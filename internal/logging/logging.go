// Package logging builds the process logger. Loggers are handed to
// components explicitly; nothing in the repository logs through a global.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

func New(out io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
