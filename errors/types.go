package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Input errors
	ErrCodeUnsafeInput  ErrorCode = "UNSAFE_INPUT"
	ErrCodePathNotFound ErrorCode = "PATH_NOT_FOUND"

	// Process errors
	ErrCodeSpawnFailed ErrorCode = "SPAWN_FAILED"
	ErrCodeEarlyExit   ErrorCode = "EARLY_EXIT"
	ErrCodeOpenFailed  ErrorCode = "OPEN_FAILED"

	// Log errors
	ErrCodeLogReadFailed ErrorCode = "LOG_READ_FAILED"
	ErrCodeConfinement   ErrorCode = "CONFINEMENT_VIOLATION"

	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// General errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// LaunchError represents a structured error with context
type LaunchError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *LaunchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *LaunchError) WithDetail(key string, value interface{}) *LaunchError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *LaunchError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new LaunchError
func New(code ErrorCode, message string) *LaunchError {
	return &LaunchError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a LaunchError
func Wrap(err error, code ErrorCode, message string) *LaunchError {
	return &LaunchError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific LaunchError code
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	launchErr, ok := err.(*LaunchError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return launchErr.Code
}

// Message returns the human readable message of a LaunchError, or the
// plain error text for any other error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if launchErr, ok := err.(*LaunchError); ok {
		return launchErr.Message
	}
	return err.Error()
}
