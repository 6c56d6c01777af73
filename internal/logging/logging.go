package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns the client logger: human-readable lines on w, warnings and
// above unless verbose.
func New(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.TimeOnly,
		NoColor:    true,
	}

	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
