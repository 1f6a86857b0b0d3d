// Package logger provides leveled logging for the landscape2 CLI.
// Informational and debug messages are only printed in verbose mode;
// warnings and errors are always printed so that isolated failures
// (a logo that could not be prepared, a repository that could not be
// collected) are visible in every build.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Fields are structured key-value pairs attached to a log entry.
type Fields = logrus.Fields

var (
	mu      sync.RWMutex
	verbose bool
	base    = newBase(os.Stderr)
)

func newBase(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		QuoteEmptyFields: true,
	})
	return l
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		base.SetLevel(logrus.DebugLevel)
	} else {
		base.SetLevel(logrus.WarnLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	base.SetOutput(w)
}

// SetJSON switches between the text and JSON formatters.
func SetJSON(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	if enabled {
		//nolint:exhaustruct // Minimal JSONFormatter initialization with required fields only
		base.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, QuoteEmptyFields: true})
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.Debugf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(base.Out, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		base.Infof(format, args...)
	}
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.Warnf(format, args...)
}

// Error prints an error message with the underlying cause attached.
func Error(err error, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.WithError(err).Errorf(format, args...)
}

// Entry is a log entry carrying structured fields.
type Entry struct {
	fields Fields
}

// WithFields returns an entry that attaches fields to every message.
func WithFields(fields Fields) *Entry {
	return &Entry{fields: fields}
}

// Warn prints a warning with the entry's fields.
func (e *Entry) Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.WithFields(e.fields).Warnf(format, args...)
}

// Error prints an error with the entry's fields and the cause.
func (e *Entry) Error(err error, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.WithFields(e.fields).WithError(err).Errorf(format, args...)
}

// Debug prints a debug message with the entry's fields if verbose mode is enabled.
func (e *Entry) Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	base.WithFields(e.fields).Debugf(format, args...)
}
