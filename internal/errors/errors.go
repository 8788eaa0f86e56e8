// Package errors defines the structured errors solprobe shows to operators.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes. Callers branch on these with IsCode; the message text is
// for people.
const (
	ErrConfig   = "CONFIG"
	ErrRPC      = "RPC"
	ErrTerminal = "TERMINAL"
	ErrSSH      = "SSH"
	ErrTimeout  = "TIMEOUT"
)

// Error is a failure an operator can act on. Error() prints the message,
// then the cause and the suggestion as indented paragraphs when present:
//
//	✗ Can't reach 'validator-1'
//
//	  dial tcp 10.0.0.5:22: i/o timeout
//
//	  Check the host is up and port 22 is open
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New returns an Error without a cause.
func New(code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion}
}

// WrapWithCode returns an Error caused by err.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion, Cause: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("✗ " + e.Message + "\n")
	for _, para := range []string{causeText(e.Cause), e.Suggestion} {
		if para != "" {
			b.WriteString("\n  " + para + "\n")
		}
	}
	return b.String()
}

func causeText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode reports whether err's chain holds an Error with the given code.
func IsCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// ExitError carries a process exit code without a user-facing message.
// Used by one-shot reports to signal that a check found a problem.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// GetExitCode extracts the exit code from an ExitError anywhere in the chain.
func GetExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
