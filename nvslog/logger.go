// Package nvslog provides the minimal leveled logging used to surface
// non-fatal decode events (dangling namespace references) without pulling
// in a structured-logging framework.
package nvslog

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Logger is a small wrapper around *log.Logger with level prefixes.
type Logger struct {
	std *log.Logger
}

// New wraps w, prefixing every line with the component name.
func New(w io.Writer, component string) *Logger {
	return &Logger{std: log.New(w, fmt.Sprintf("[%s] ", component), log.LstdFlags)}
}

// Default returns a logger writing to stderr under the "nvs" component
// name. Used when callers pass a nil *Logger to the decoder.
func Default() *Logger {
	return New(os.Stderr, "nvs")
}

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	l.std.Printf("WARN "+format, args...)
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil {
		return
	}
	l.std.Printf("DEBUG "+format, args...)
}
