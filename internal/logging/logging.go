// Package logging provides the leveled terminal logger shared by the parsing
// pipeline and the subcommands. The logger is an explicit value threaded
// through the pipeline context rather than package-level state, so each parse
// controls exactly one logger.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Level controls which messages a Logger emits. Lower levels are noisier.
type Level int

// Levels, noisiest first. LevelQuiet suppresses everything.
const (
	LevelDebug Level = iota
	LevelVerbose
	LevelInfo
	LevelWarn
	LevelError
	LevelQuiet
)

// ParseLevel maps a configuration string to a Level. Unknown strings fall
// back to LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "verbose":
		return LevelVerbose
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger is a leveled terminal logger. Verbose sits between debug and info;
// verbose messages render at info styling but only when the level permits.
type Logger struct {
	level  Level
	colors bool
	cl     *log.Logger
}

// Options configures a Logger.
type Options struct {
	Name    string
	NoColor bool
}

// New creates a Logger writing to w at LevelInfo.
func New(w io.Writer, name string) *Logger {
	return NewWithOptions(w, Options{Name: name})
}

// NewWithOptions creates a Logger writing to w with the given options.
func NewWithOptions(w io.Writer, opts Options) *Logger {
	cl := log.NewWithOptions(w, log.Options{Prefix: opts.Name})
	cl.SetLevel(log.DebugLevel)

	if opts.NoColor {
		cl.SetColorProfile(termenv.Ascii)
	}

	return &Logger{level: LevelInfo, colors: !opts.NoColor, cl: cl}
}

// Discard returns a Logger that emits nothing. Useful for tests and for
// collaborators that accept an optional logger.
func Discard() *Logger {
	l := NewWithOptions(io.Discard, Options{NoColor: true})
	l.SetLevel(LevelQuiet)

	return l
}

// SetLevel sets the minimum level the logger emits.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	return l.level
}

// Colors reports whether terminal colors are enabled.
func (l *Logger) Colors() bool {
	return l.colors
}

// Debugf logs a debug message.
func (l *Logger) Debugf(format string, args ...any) {
	if l.level <= LevelDebug {
		l.cl.Debug(fmt.Sprintf(format, args...))
	}
}

// Verbosef logs an informational message shown only at verbose level or below.
func (l *Logger) Verbosef(format string, args ...any) {
	if l.level <= LevelVerbose {
		l.cl.Info(fmt.Sprintf(format, args...))
	}
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...any) {
	if l.level <= LevelInfo {
		l.cl.Info(fmt.Sprintf(format, args...))
	}
}

// Warnf logs a warning.
func (l *Logger) Warnf(format string, args ...any) {
	if l.level <= LevelWarn {
		l.cl.Warn(fmt.Sprintf(format, args...))
	}
}

// Errorf logs an error.
func (l *Logger) Errorf(format string, args ...any) {
	if l.level <= LevelError {
		l.cl.Error(fmt.Sprintf(format, args...))
	}
}
