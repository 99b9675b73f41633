package app

import (
	"fmt"
	"time"
)

// ErrorType represents different types of application errors
type ErrorType int

const (
	ErrorTerminal ErrorType = iota
	ErrorConfig
	ErrorLogging
	ErrorHistory
	ErrorState
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	types := []string{
		"terminal", "config", "logging", "history", "state",
	}

	if int(e) < len(types) {
		return types[e]
	}
	return "unknown"
}

// AppError represents an application-specific error
type AppError struct {
	Type      ErrorType `json:"type"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Cause     error     `json:"cause,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s", e.Type.String(), e.Message, e.Cause.Error())
	}
	return fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new application error
func NewAppError(errorType ErrorType, code, message string, cause error) *AppError {
	return &AppError{
		Type:      errorType,
		Code:      code,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}
