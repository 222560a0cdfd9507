// Package errors provides centralized error definitions and error handling
// utilities for watch. It defines sentinel errors for the failure kinds the
// run loop can hit, typed errors that carry context, and helpers that map an
// error to a process exit code.
//
// # Error Types
//
//   - ExecError: the command could not be spawned (missing command, no shell,
//     spawn failure)
//   - IOError: the terminal or the screenshot directory could not be written
//
// Both unwrap to their cause so errors.Is works against the sentinels:
//
//	err := errors.NewExecError("spawn", errors.ErrSpawnFailed).WithCommand("ls -l")
//	if errors.Is(err, errors.ErrSpawnFailed) { ... }
//
// # Exit Codes
//
// ExitCode classifies an error returned from the run loop. Configuration and
// terminal setup failures exit with ExitSetupFailure; every other error exits
// with ExitFailure.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Process exit codes used by the entrypoint.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitSetupFailure = 2
)

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Execution sentinel errors
var (
	// ErrMissingCommand indicates an empty argument list.
	ErrMissingCommand = New("missing command")
	// ErrShellNotFound indicates that no usable shell could be resolved.
	ErrShellNotFound = New("shell not found")
	// ErrSpawnFailed indicates that the command could not be started.
	ErrSpawnFailed = New("failed to run command")
)

// I/O and setup sentinel errors
var (
	// ErrTerminal indicates that the terminal could not be configured or written.
	ErrTerminal = New("terminal error")
	// ErrScreenshot indicates that a screenshot could not be saved.
	ErrScreenshot = New("screenshot error")
	// ErrInvalidConfig indicates that configuration failed validation.
	ErrInvalidConfig = New("invalid configuration")
)

// -----------------------------------------------------------------------------
// Base Error Implementation
// -----------------------------------------------------------------------------

// baseError provides common functionality for all error types.
type baseError struct {
	message string
	cause   error
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

func (e *baseError) format(prefix string, parts []string) string {
	if len(parts) > 0 {
		prefix = fmt.Sprintf("%s [%s]", prefix, strings.Join(parts, ", "))
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// ExecError represents a failure to start the watched command.
//
// Example:
//
//	err := errors.NewExecError("spawn", cause).WithCommand("make test")
//	fmt.Println(err) // "exec error [command=make test]: spawn: ..."
type ExecError struct {
	baseError
	Command string
}

// NewExecError creates a new ExecError.
func NewExecError(message string, cause error) *ExecError {
	return &ExecError{
		baseError: baseError{message: message, cause: cause},
	}
}

// WithCommand adds the command line to the error context.
func (e *ExecError) WithCommand(command string) *ExecError {
	e.Command = command
	return e
}

// Error returns the formatted error message.
func (e *ExecError) Error() string {
	var parts []string
	if e.Command != "" {
		parts = append(parts, fmt.Sprintf("command=%s", e.Command))
	}
	return e.format("exec error", parts)
}

// IOError represents a terminal or filesystem failure.
type IOError struct {
	baseError
	Path string
}

// NewIOError creates a new IOError.
func NewIOError(message string, cause error) *IOError {
	return &IOError{
		baseError: baseError{message: message, cause: cause},
	}
}

// WithPath adds a filesystem path to the error context.
func (e *IOError) WithPath(path string) *IOError {
	e.Path = path
	return e
}

// Error returns the formatted error message.
func (e *IOError) Error() string {
	var parts []string
	if e.Path != "" {
		parts = append(parts, fmt.Sprintf("path=%s", e.Path))
	}
	return e.format("io error", parts)
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// ExitCode maps an error returned by the run loop to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidConfig), errors.Is(err, ErrTerminal):
		return ExitSetupFailure
	default:
		return ExitFailure
	}
}

// Wrap wraps an error with additional context.
// Returns nil if err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
