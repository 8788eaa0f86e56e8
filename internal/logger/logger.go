// Package logger provides a simple logging interface for solprobe components.
// It allows packages to log debug, info, warn, and error messages without
// being coupled to a specific logging implementation.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// DebugEnv enables debug-level output when set to any non-empty value.
const DebugEnv = "SOLPROBE_DEBUG"

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// envLogger writes lines shaped like "2024-01-02 15:04:05 [INFO] - message".
// Debug lines are only written when SOLPROBE_DEBUG is set.
type envLogger struct {
	prefix string
	out    *log.Logger
	now    func() time.Time
}

// NewEnvLogger creates a logger that respects the SOLPROBE_DEBUG environment variable.
// The prefix is prepended to all log messages (e.g., "[rpc]" or "[monitor]").
func NewEnvLogger(prefix string) Logger {
	return newEnvLogger(prefix, log.Default())
}

// NewWriterLogger creates an env logger that writes to w instead of the
// standard logger.
func NewWriterLogger(prefix string, w io.Writer) Logger {
	return newEnvLogger(prefix, log.New(w, "", 0))
}

func newEnvLogger(prefix string, out *log.Logger) *envLogger {
	return &envLogger{prefix: prefix, out: out, now: time.Now}
}

func (l *envLogger) write(level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.prefix != "" {
		msg = l.prefix + " " + msg
	}
	// The standard logger adds its own timestamp unless flags are cleared.
	if l.out.Flags() != 0 {
		l.out.Printf("[%s] - %s", level, msg)
		return
	}
	l.out.Printf("%s [%s] - %s", l.now().Format("2006-01-02 15:04:05"), level, msg)
}

func (l *envLogger) Debug(format string, args ...interface{}) {
	if os.Getenv(DebugEnv) != "" {
		l.write("DEBUG", format, args...)
	}
}

func (l *envLogger) Info(format string, args ...interface{}) {
	l.write("INFO", format, args...)
}

func (l *envLogger) Warn(format string, args ...interface{}) {
	l.write("WARN", format, args...)
}

func (l *envLogger) Error(format string, args ...interface{}) {
	l.write("ERROR", format, args...)
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
// Safe for use from the refresh goroutine and the test goroutine at once.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...interface{})  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the captured messages.
func (l *BufferLogger) Snapshot() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogMessage, len(l.Messages))
	copy(out, l.Messages)
	return out
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}

// defaultLogger is the package-level default logger.
var defaultLogger = NewEnvLogger("")

// Default returns the default logger for the package.
func Default() Logger {
	return defaultLogger
}

// SetDefault sets the default logger for the package.
func SetDefault(l Logger) {
	defaultLogger = l
}
