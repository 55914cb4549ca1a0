// Package errors provides centralized error handling for gittyup.
//
// This package defines sentinel errors used for programmatic error
// categorization throughout the application. All error types can be checked
// using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
var (
	// ErrInvalidRepository indicates that a path failed repository
	// validation (missing, not a directory, or no recognizable git layout).
	ErrInvalidRepository = errors.New("not a valid git repository")

	// ErrScanFailed indicates a fatal scan-level failure. Per-directory
	// failures are recovered into the scan error list instead, so this is
	// reserved for catastrophic cases such as an unreadable root.
	ErrScanFailed = errors.New("repository scan failed")

	// ErrGitOperation indicates that an invoked git command failed.
	ErrGitOperation = errors.New("git operation failed")

	// ErrCommandTimeout indicates a git command exceeded its timeout.
	ErrCommandTimeout = errors.New("command timeout exceeded")

	// ErrInvalidOperation indicates an unsupported operation name.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvalidOutputFormat indicates an invalid output format was
	// specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrInvalidPath indicates the scan root does not exist or is not a
	// directory.
	ErrInvalidPath = errors.New("invalid path")

	// ErrConfigInvalid indicates a configuration value failed validation.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrConfigExists indicates an attempt to write a config file that
	// already exists without forcing.
	ErrConfigExists = errors.New("config file already exists")

	// ErrOperationsFailed indicates that one or more repositories in a
	// batch ended with an error result. The batch itself still completed.
	ErrOperationsFailed = errors.New("one or more operations failed")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")
)
