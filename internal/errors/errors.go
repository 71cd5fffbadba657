// Package errors provides the failure values produced while launching a
// child process.
//
// LaunchError carries a short message, an optional hint, the rendered
// diagnostic and the underlying cause. Callers outside this module only ever
// see it through the error interface.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a launch failure.
type Kind int

// Failure kinds.
const (
	KindPrecondition Kind = iota + 1 // Empty argument list
	KindSpawn                        // Process could not be created
	KindExit                         // Process exited unsuccessfully
	KindDecode                       // Captured output is not valid UTF-8
)

// String returns a lowercase name for the kind, used in logs and spans.
func (k Kind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindSpawn:
		return "spawn"
	case KindExit:
		return "exit"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// LaunchError represents a failed launch with its diagnostic.
type LaunchError struct {
	// Message is the primary one-line description.
	Message string

	// Hint provides guidance on how to fix the failure.
	Hint string

	// Detail is the rendered diagnostic (command line, status, output).
	Detail string

	// Cause is the underlying error, if any.
	Cause error

	// Kind classifies the failure.
	Kind Kind
}

// Error implements the error interface.
func (e *LaunchError) Error() string {
	var b strings.Builder

	b.WriteString(e.Message)

	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}

	if e.Detail != "" {
		b.WriteString("\n")
		b.WriteString(e.Detail)
	}

	return b.String()
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a rendered diagnostic.
func (e *LaunchError) WithDetail(detail string) *LaunchError {
	e.Detail = detail
	return e
}

// As is a convenience function for errors.As with LaunchError.
func As(err error, target **LaunchError) bool {
	return errors.As(err, target)
}

// KindOf returns the kind of err, or 0 when err is not a LaunchError.
func KindOf(err error) Kind {
	var le *LaunchError
	if As(err, &le) {
		return le.Kind
	}

	return 0
}

// --- Constructors ---

// MissingCommand returns the error for an empty argument list.
func MissingCommand() *LaunchError {
	return &LaunchError{
		Message: "Missing command",
		Hint:    "Pass the executable as the first argument",
		Kind:    KindPrecondition,
	}
}

// SpawnFailed returns the error for a process that could not be started.
func SpawnFailed(cause error) *LaunchError {
	return &LaunchError{
		Message: "Failed to execute command",
		Hint:    "Check that the executable exists, is executable, and is on PATH",
		Cause:   cause,
		Kind:    KindSpawn,
	}
}

// CommandFailed returns the error for a process that exited unsuccessfully.
func CommandFailed(detail string) *LaunchError {
	return &LaunchError{
		Message: "Command failed",
		Detail:  detail,
		Kind:    KindExit,
	}
}

// OutputNotUTF8 returns the error for captured output that cannot be
// rendered as text. stream is "stdout" or "stderr".
func OutputNotUTF8(stream string) *LaunchError {
	return &LaunchError{
		Message: fmt.Sprintf("Invalid UTF-8 in %s", stream),
		Hint:    "The command wrote binary data; redirect it to a file to inspect it",
		Kind:    KindDecode,
	}
}
