// Package logger builds the service-wide zerolog.Logger.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const serviceName = "wallet-ledger"

// New returns the process logger. Accepted levels are debug, info, warn and
// error; anything else falls back to info. Pretty switches to the
// human-readable console writer for local development.
func New(level string, pretty bool) zerolog.Logger {
	var w io.Writer = os.Stdout
	if pretty {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return base(w, level).Caller().Logger()
}

// NewWithWriter returns a logger against a custom writer, without the caller
// annotation. Used by tests that assert on emitted fields.
func NewWithWriter(level string, w io.Writer) zerolog.Logger {
	return base(w, level).Logger()
}

func base(w io.Writer, level string) zerolog.Context {
	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Str("service", serviceName)
}

func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
