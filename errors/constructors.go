package errors

import (
	"fmt"
	"os/exec"
)

// UnsafeInput creates a validation error for a rejected request field
func UnsafeInput(field, reason string) *LaunchError {
	return New(ErrCodeUnsafeInput, reason).
		WithDetail("field", field)
}

// PathNotFound creates an error for a required path that does not exist
func PathNotFound(field, message, path string) *LaunchError {
	return New(ErrCodePathNotFound, message).
		WithDetail("field", field).
		WithDetail("path", path)
}

// SpawnFailed creates a process creation failure error
func SpawnFailed(backend string, err error) *LaunchError {
	return Wrap(err, ErrCodeSpawnFailed, fmt.Sprintf("%s spawn failed: %v", backend, err)).
		WithDetail("backend", backend)
}

// EarlyExit creates an error for a backend that exited during the liveness window
func EarlyExit(backend string, code int) *LaunchError {
	return New(ErrCodeEarlyExit, fmt.Sprintf("%s exited with code: %d", backend, code)).
		WithDetail("backend", backend).
		WithDetail("exitCode", code)
}

// Confinement creates an error for a path outside its allowed root
func Confinement(path, root string) *LaunchError {
	return New(ErrCodeConfinement, "Log path is outside app data directory").
		WithDetail("path", path).
		WithDetail("root", root)
}

// LogReadFailed creates an error for an unreadable log file
func LogReadFailed(path string, err error) *LaunchError {
	return Wrap(err, ErrCodeLogReadFailed, fmt.Sprintf("Failed to read log: %v", err)).
		WithDetail("path", path)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *LaunchError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *LaunchError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// OpenFailed creates a file browser failure error
func OpenFailed(path string, err error) *LaunchError {
	launchErr := Wrap(err, ErrCodeOpenFailed, fmt.Sprintf("failed to open %s", path)).
		WithDetail("path", path)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		launchErr = launchErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return launchErr
}
