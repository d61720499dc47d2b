// Package logging provides a small leveled logger for the CLI commands
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Logger provides leveled, optionally colored logging. Quiet mode raises
// the floor to WARN so batch runs can be silenced without losing problems.
type Logger struct {
	mu    sync.Mutex
	quiet bool

	// ANSI codes, empty when color is disabled
	green  string
	yellow string
	red    string
	reset  string

	// Out and ErrOut default to stdout/stderr and exist so tests can
	// capture output
	Out    io.Writer
	ErrOut io.Writer
}

// New creates a logger. Colors are enabled only when stdout is a terminal
// and the environment does not opt out.
func New(quiet bool) *Logger {
	l := &Logger{
		quiet:  quiet,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
	color := isTerminal(os.Stdout) &&
		os.Getenv("NO_COLOR") == "" &&
		strings.ToLower(os.Getenv("TERM")) != "dumb"
	if color {
		l.green = "\033[1;92m"
		l.yellow = "\033[1;93m"
		l.red = "\033[1;91m"
		l.reset = "\033[0m"
	}
	return l
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

func (l *Logger) line(w io.Writer, level, color, text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if color != "" {
		fmt.Fprintf(w, "%s[%s]%s %s\n", color, level, l.reset, text)
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", level, text)
}

// Info logs at INFO level; suppressed in quiet mode
func (l *Logger) Info(format string, args ...interface{}) {
	if l.quiet {
		return
	}
	l.line(l.Out, "INFO", "", fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green); suppressed in quiet mode
func (l *Logger) Success(format string, args ...interface{}) {
	if l.quiet {
		return
	}
	l.line(l.Out, "SUCCESS", l.green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow), even in quiet mode
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(l.Out, "WARN", l.yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red) to stderr, even in quiet mode
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(l.ErrOut, "ERROR", l.red, fmt.Sprintf(format, args...))
}
