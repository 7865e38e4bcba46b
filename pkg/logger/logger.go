// Package logger provides structured logging for the CLI and the directory
// watcher. The conversion packages stay silent and report through errors.
package logger

import (
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Logger is the structured logging interface used across the tool.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

type charmLogger struct {
	logger *charmlog.Logger
}

func (l *charmLogger) Debug(msg string, keyvals ...any) { l.logger.Debug(msg, keyvals...) }
func (l *charmLogger) Info(msg string, keyvals ...any)  { l.logger.Info(msg, keyvals...) }
func (l *charmLogger) Warn(msg string, keyvals ...any)  { l.logger.Warn(msg, keyvals...) }
func (l *charmLogger) Error(msg string, keyvals ...any) { l.logger.Error(msg, keyvals...) }

// New creates a logger writing to the given output. Verbose enables debug
// level.
func New(output io.Writer, verbose bool) Logger {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	return &charmLogger{
		logger: charmlog.NewWithOptions(output, charmlog.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
			Level:           level,
		}),
	}
}

// NewDefault creates a logger writing to stderr at info level.
func NewDefault() Logger {
	return New(os.Stderr, false)
}

// Nop returns a logger that discards everything. Intended for tests.
func Nop() Logger {
	return New(io.Discard, false)
}
