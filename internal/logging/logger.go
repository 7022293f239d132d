package logging

import (
	"fmt"
	"io"
	"time"
)

// Logger writes diagnostics for a single run. Verbose lines carry the time
// elapsed since the logger was created.
type Logger struct {
	Writer  io.Writer
	Verbose bool
	Prefix  string
	started time.Time
}

func New(writer io.Writer, verbose bool) Logger {
	return Logger{Writer: writer, Verbose: verbose, Prefix: "filetz", started: time.Now()}
}

func (l Logger) Infof(format string, args ...any) {
	if l.Writer == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.Prefix != "" {
		msg = l.Prefix + ": " + msg
	}
	fmt.Fprintln(l.Writer, msg)
}

func (l Logger) Verbosef(format string, args ...any) {
	if !l.Verbose {
		return
	}
	l.Infof("[+%s] "+format, append([]any{l.elapsed()}, args...)...)
}

// Measure returns a stop function that logs how long label took.
func (l Logger) Measure(label string) func() {
	if !l.Verbose {
		return func() {}
	}
	start := time.Now()
	return func() {
		l.Verbosef("%s took %s", label, time.Since(start).Round(time.Millisecond))
	}
}

func (l Logger) elapsed() time.Duration {
	if l.started.IsZero() {
		return 0
	}
	return time.Since(l.started).Round(time.Millisecond)
}
