package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
}

type SlogLogger struct {
	log *slog.Logger
}

// New builds a logger from textual settings. Unknown levels fall back to info
// and unknown formats to text.
func New(level, format string) Logger {
	return newSlogLogger(os.Stderr, ParseLevel(level), format)
}

func newSlogLogger(w io.Writer, level slog.Level, format string) *SlogLogger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Value = slog.TimeValue(a.Value.Time().UTC())
			}
			return a
		},
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &SlogLogger{log: slog.New(handler)}
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (sl *SlogLogger) Debug(msg string, args ...any) {
	sl.log.Debug(msg, args...)
}

func (sl *SlogLogger) Info(msg string, args ...any) {
	sl.log.Info(msg, args...)
}

func (sl *SlogLogger) Warn(msg string, args ...any) {
	sl.log.Warn(msg, args...)
}

func (sl *SlogLogger) Error(msg string, args ...any) {
	sl.log.Error(msg, args...)
}

func (sl *SlogLogger) Fatal(msg string, args ...any) {
	sl.log.Error(msg, args...)
	os.Exit(1)
}

type nopLogger struct{}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}
func (nopLogger) Fatal(msg string, args ...any) {}
