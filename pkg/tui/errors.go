package tui

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotTerminal is returned when stdin or stdout is not attached to a terminal
var ErrNotTerminal = errors.New("not a terminal")

// TerminalSetupError reports a capability toggle that failed while entering
// the terminal UI. The terminal has already been rolled back when it is returned.
type TerminalSetupError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *TerminalSetupError) Error() string {
	return fmt.Sprintf("terminal setup failed: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying backend error
func (e *TerminalSetupError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause reach the backend error
func (e *TerminalSetupError) Cause() error {
	return errors.Cause(e.Err)
}

// TerminalTeardownError reports the first capability toggle that failed
// while restoring the terminal. Restoration continued past it.
type TerminalTeardownError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *TerminalTeardownError) Error() string {
	return fmt.Sprintf("terminal teardown failed: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying backend error
func (e *TerminalTeardownError) Unwrap() error {
	return e.Err
}

// Cause lets errors.Cause reach the backend error
func (e *TerminalTeardownError) Cause() error {
	return errors.Cause(e.Err)
}
