// Package logging provides the logger used by dirkit services and commands.
//
// Available implementations:
//   - ConsoleLogger: writes prefixed, optionally colored lines to a writer
//   - NullLogger: discards all messages
//
// All implementations are safe for concurrent use.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Logger is the logging contract shared across packages.
type Logger interface {
	Verbose(format string, args ...interface{})
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// ConsoleLogger writes log lines to an output writer, stderr by default.
type ConsoleLogger struct {
	out      io.Writer
	verbose  bool
	verboseC *color.Color
	errorC   *color.Color
	mu       sync.Mutex
}

// Option configures a ConsoleLogger.
type Option func(*ConsoleLogger)

// WithOutput redirects the logger to w.
func WithOutput(w io.Writer) Option {
	return func(l *ConsoleLogger) {
		l.out = w
	}
}

// NewConsoleLogger creates a ConsoleLogger. Verbose messages are dropped unless verbose is true.
func NewConsoleLogger(verbose bool, opts ...Option) *ConsoleLogger {
	l := &ConsoleLogger{
		out:      os.Stderr,
		verbose:  verbose,
		verboseC: color.New(color.FgCyan),
		errorC:   color.New(color.FgRed, color.Bold),
	}
	for _, opt := range opts {
		opt(l)
	}

	if !supportsColor(l.out) || os.Getenv("NO_COLOR") != "" {
		l.verboseC.DisableColor()
		l.errorC.DisableColor()
	}
	return l
}

// Verbose logs diagnostic details when verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write(l.verboseC.Sprint("[VERBOSE]")+" ", format, args...)
}

// Info logs normal progress messages.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args...)
}

// Error logs failures.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(l.errorC.Sprint("[ERROR]")+" ", format, args...)
}

func (l *ConsoleLogger) write(prefix, format string, args ...interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, prefix+msg+"\n")
}

func supportsColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// NullLogger discards all messages.
type NullLogger struct{}

// NewNullLogger creates a NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

// Verbose is a no-op.
func (l *NullLogger) Verbose(format string, args ...interface{}) {}

// Info is a no-op.
func (l *NullLogger) Info(format string, args ...interface{}) {}

// Error is a no-op.
func (l *NullLogger) Error(format string, args ...interface{}) {}
