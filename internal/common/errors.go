// Package common defines the error taxonomy shared by the storage layer,
// the editor session and the CLI. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// ErrNotFound is returned when an update or restore targets a missing row.
	ErrNotFound = errors.New("not found")

	// ErrConstraintViolation covers duplicate ids, duplicate names and
	// dangling folder references. It is not retryable.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrStoreUnavailable wraps I/O and driver failures. It is retryable:
	// the editor keeps its unsaved state and the next flush tries again.
	ErrStoreUnavailable = errors.New("store unavailable")
)
