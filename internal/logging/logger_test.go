package logging

import (
	"bytes"
	"strings"
	"testing"
)

// newBufferedLogger returns a logger writing into separate out/err buffers
func newBufferedLogger(quiet bool) (*Logger, *bytes.Buffer, *bytes.Buffer) {
	l := New(quiet)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	l.Out = out
	l.ErrOut = errOut
	return l, out, errOut
}

// TestLoggerLevels tests that each level tags its output
func TestLoggerLevels(t *testing.T) {
	l, out, errOut := newBufferedLogger(false)

	l.Info("hello %s", "world")
	l.Success("done")
	l.Warn("careful")
	l.Error("broken")

	for _, want := range []string{"[INFO] hello world", "[SUCCESS] done", "[WARN] careful"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("stdout missing %q, got:\n%s", want, out.String())
		}
	}
	if !strings.Contains(errOut.String(), "[ERROR] broken") {
		t.Errorf("stderr missing error line, got:\n%s", errOut.String())
	}
}

// TestLoggerColorIsolation tests that one logger's color settings do not
// bleed into another logger's output
func TestLoggerColorIsolation(t *testing.T) {
	coloredOut := &bytes.Buffer{}
	colored := &Logger{
		yellow: "\033[1;93m",
		reset:  "\033[0m",
		Out:    coloredOut,
		ErrOut: &bytes.Buffer{},
	}
	colored.Warn("tinted")
	if !strings.Contains(coloredOut.String(), "\033[1;93m") {
		t.Errorf("colored logger emitted no escape codes:\n%q", coloredOut.String())
	}

	plain, out, errOut := newBufferedLogger(false)
	plain.Warn("plain")
	plain.Error("plain too")
	if strings.Contains(out.String(), "\033") || strings.Contains(errOut.String(), "\033") {
		t.Errorf("plain logger emitted escape codes:\nstdout %q\nstderr %q",
			out.String(), errOut.String())
	}
}

// TestLoggerQuietMode tests that quiet suppresses info but not warnings
func TestLoggerQuietMode(t *testing.T) {
	l, out, errOut := newBufferedLogger(true)

	l.Info("hidden")
	l.Success("also hidden")
	l.Warn("still shown")
	l.Error("still shown too")

	s := out.String()
	if strings.Contains(s, "hidden") {
		t.Errorf("quiet logger leaked info output:\n%s", s)
	}
	if !strings.Contains(s, "[WARN] still shown") {
		t.Errorf("quiet logger dropped warning:\n%s", s)
	}
	if !strings.Contains(errOut.String(), "[ERROR]") {
		t.Errorf("quiet logger dropped error:\n%s", errOut.String())
	}
}
