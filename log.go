package greenflag

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger builds the runtime logger. Output is human-readable console text
// unless jsonOutput is set. Unknown levels fall back to info.
func NewLogger(w io.Writer, level string, jsonOutput bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	out := w
	if !jsonOutput {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Str("component", "greenflag").Logger()
}

// InitLogger builds a logger with NewLogger and installs it as the zerolog
// global, which scene-graph diagnostics write to.
func InitLogger(w io.Writer, level string, jsonOutput bool) zerolog.Logger {
	logger := NewLogger(w, level, jsonOutput)
	log.Logger = logger
	return logger
}
