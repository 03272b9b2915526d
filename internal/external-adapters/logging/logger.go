// Package logging provides the zerolog implementation of interfaces.Logger.
package logging

import (
	"io"
	"time"

	"github.com/ochairo/stampkit/internal/domain/interfaces"
	"github.com/rs/zerolog"
)

// Logger adapts a zerolog.Logger to the domain logging contract
type Logger struct {
	zl zerolog.Logger
}

// Options controls logger construction
type Options struct {
	Verbose bool // enable debug level
	JSON    bool // emit JSON lines instead of console text
	Program string
}

// New creates a logger writing to w
func New(w io.Writer, opts Options) *Logger {
	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	out := w
	if !opts.JSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if opts.Program != "" {
		ctx = ctx.Str("program", opts.Program)
	}

	return &Logger{zl: ctx.Logger()}
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.emit(l.zl.Debug(), msg, fields)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.emit(l.zl.Info(), msg, fields)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.emit(l.zl.Warn(), msg, fields)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.emit(l.zl.Error(), msg, fields)
}

func (l *Logger) emit(ev *zerolog.Event, msg string, fields []interfaces.Field) {
	// Disabled levels return a nil event
	if ev == nil {
		return
	}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case error:
			ev = ev.AnErr(f.Key, v)
		case time.Duration:
			ev = ev.Dur(f.Key, v)
		default:
			ev = ev.Interface(f.Key, v)
		}
	}
	ev.Msg(msg)
}
