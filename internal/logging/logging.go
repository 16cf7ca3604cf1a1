// Package logging builds the diagnostic logger shared by all components.
// User-facing output goes through internal/ui; this logger carries the
// structured, leveled detail behind it.
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New creates a console zerolog logger on stderr at the given level
// (debug|info|warn|error; defaults to info).
func New(level string) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch strings.ToLower(level) {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn", "warning":
		lvl = zerolog.WarnLevel
	case "error", "err":
		lvl = zerolog.ErrorLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
