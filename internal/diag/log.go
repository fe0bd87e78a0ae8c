// Package diag holds the tagged startup logger and the fatal/warn policy used
// when a required layer or extension is missing.
package diag

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/cockroachdb/errors"
)

type Tag int

const (
	Message Tag = iota
	Warning
	Error
)

func (t Tag) String() string {
	switch t {
	case Message:
		return "MESSAGE"
	case Warning:
		return "WARNING"
	case Error:
		return "ERROR"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// Logger writes lines of the form "[15:04:05]{TAG}: text". Messages and
// warnings go to out, errors go to errOut.
type Logger struct {
	out    *log.Logger
	errOut *log.Logger
	now    func() time.Time
}

func New(out, errOut io.Writer) *Logger {
	return &Logger{
		out:    log.New(out, "", 0),
		errOut: log.New(errOut, "", 0),
		now:    time.Now,
	}
}

func Default() *Logger {
	return New(os.Stdout, os.Stderr)
}

// WithClock replaces the timestamp source.
func (l *Logger) WithClock(now func() time.Time) *Logger {
	l.now = now
	return l
}

func (l *Logger) Log(tag Tag, format string, args ...any) {
	line := fmt.Sprintf("[%s]{%s}: %s", l.now().Format("15:04:05"), tag, fmt.Sprintf(format, args...))
	if tag == Error {
		l.errOut.Println(line)
		return
	}
	l.out.Println(line)
}

func (l *Logger) Messagef(format string, args ...any) {
	l.Log(Message, format, args...)
}

func (l *Logger) Warningf(format string, args ...any) {
	l.Log(Warning, format, args...)
}

// Errorf logs at the ERROR tag and returns the same text as a fatal error.
func (l *Logger) Errorf(format string, args ...any) error {
	l.Log(Error, format, args...)
	return Fatal(errors.NewWithDepthf(1, format, args...))
}

// List logs title followed by one untagged line per entry.
func (l *Logger) List(title string, entries []string) {
	l.Messagef("%s", title)
	for _, entry := range entries {
		l.out.Println(entry)
	}
}
