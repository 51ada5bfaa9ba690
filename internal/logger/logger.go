// Package logger provides the logging interface for kojicron components.
// The production implementation writes human-readable lines to the console
// when stderr is a terminal and to a size-rotated log file when one is
// configured, so that both interactive and cron-driven runs leave a trace.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Log files rotate at 500 MB, keeping one backup.
const (
	maxLogSizeMB  = 500
	maxLogBackups = 1
)

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Options configures the production logger.
type Options struct {
	// Debug lowers the level threshold to include debug messages.
	Debug bool

	// LogFile, when non-empty, adds a size-rotated file sink.
	LogFile string

	// ConsoleOut overrides the console destination (stderr by default).
	// The tty check is skipped when set; used by tests.
	ConsoleOut io.Writer
}

// New builds a logger from the resolved options.
func New(opts Options) Logger {
	var sinks []io.Writer

	switch {
	case opts.ConsoleOut != nil:
		sinks = append(sinks, zerolog.ConsoleWriter{Out: opts.ConsoleOut, NoColor: true})
	case stderrIsTerminal():
		sinks = append(sinks, zerolog.ConsoleWriter{Out: os.Stderr})
	default:
		// Keep error-level messages visible on stderr even without a tty
		// so cron captures them.
		sinks = append(sinks, errorOnlyWriter{
			w: zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true},
		})
	}

	if opts.LogFile != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxLogBackups,
		}
		sinks = append(sinks, zerolog.ConsoleWriter{Out: rotated, NoColor: true})
	}

	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}

	zl := zerolog.New(zerolog.MultiLevelWriter(sinks...)).
		Level(level).
		With().Timestamp().Logger()

	return &zeroLogger{zl: zl}
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// zeroLogger implements Logger on top of zerolog.
type zeroLogger struct {
	zl zerolog.Logger
}

func (l *zeroLogger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *zeroLogger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

func (l *zeroLogger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *zeroLogger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

// errorOnlyWriter drops everything below error level.
type errorOnlyWriter struct {
	w io.Writer
}

func (e errorOnlyWriter) Write(p []byte) (int, error) {
	return e.w.Write(p)
}

func (e errorOnlyWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < zerolog.ErrorLevel {
		return len(p), nil
	}
	return e.w.Write(p)
}

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{}) {}
func (l *noopLogger) Info(format string, args ...interface{})  {}
func (l *noopLogger) Warn(format string, args ...interface{})  {}
func (l *noopLogger) Error(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
type BufferLogger struct {
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{Messages: make([]LogMessage, 0)}
}

func (l *BufferLogger) Debug(format string, args ...interface{}) {
	l.append("debug", format, args...)
}

func (l *BufferLogger) Info(format string, args ...interface{}) {
	l.append("info", format, args...)
}

func (l *BufferLogger) Warn(format string, args ...interface{}) {
	l.append("warn", format, args...)
}

func (l *BufferLogger) Error(format string, args ...interface{}) {
	l.append("error", format, args...)
}

func (l *BufferLogger) append(level, format string, args ...interface{}) {
	l.Messages = append(l.Messages, LogMessage{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.Messages = l.Messages[:0]
}
