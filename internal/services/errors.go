package services

import "errors"

// ErrNotFound signals that no build matches the query. An empty registry is
// an expected condition, not a failure.
var ErrNotFound = errors.New("build not found")

// ValidationError represents a rejected request: missing file or an
// unsupported build type.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// PersistenceError represents a registry read or write failure.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return "registry operation failed: " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// DeletionError represents an unexpected artifact-removal failure during
// delete. The registry record is left intact so the operation can be retried.
type DeletionError struct {
	Err error
}

func (e *DeletionError) Error() string {
	return "artifact cleanup failed: " + e.Err.Error()
}

func (e *DeletionError) Unwrap() error { return e.Err }
