// Package logging provides the zerolog-backed implementation of the domain
// Logger interface.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ochairo/preflight/internal/domain/interfaces"
)

// ZerologLogger adapts zerolog to the domain Logger interface
type ZerologLogger struct {
	log zerolog.Logger
}

// New creates a logger writing human-readable output to stderr at the given
// level. Unknown level strings fall back to info.
func New(level string) *ZerologLogger {
	return NewWithWriter(level, zerolog.ConsoleWriter{Out: os.Stderr})
}

// NewWithWriter creates a logger with a custom writer (useful for tests)
func NewWithWriter(level string, w io.Writer) *ZerologLogger {
	return &ZerologLogger{
		log: zerolog.New(w).Level(parseLevel(level)).With().Timestamp().Logger(),
	}
}

func parseLevel(raw string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off", "none":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// Debug logs debug-level messages
func (l *ZerologLogger) Debug(msg string, fields ...interfaces.Field) {
	l.emit(l.log.Debug(), msg, fields)
}

// Info logs informational messages
func (l *ZerologLogger) Info(msg string, fields ...interfaces.Field) {
	l.emit(l.log.Info(), msg, fields)
}

// Warn logs warning messages
func (l *ZerologLogger) Warn(msg string, fields ...interfaces.Field) {
	l.emit(l.log.Warn(), msg, fields)
}

// Error logs error messages
func (l *ZerologLogger) Error(msg string, fields ...interfaces.Field) {
	l.emit(l.log.Error(), msg, fields)
}

func (l *ZerologLogger) emit(event *zerolog.Event, msg string, fields []interfaces.Field) {
	for _, f := range fields {
		event = event.Interface(f.Key, f.Value)
	}
	event.Msg(msg)
}
