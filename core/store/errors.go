package store

import "errors"

var (
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrPersistence wraps failures of the underlying database commit.
	ErrPersistence = errors.New("persistence failure")
	// ErrInvalidRecord is returned when a record violates a field constraint.
	ErrInvalidRecord = errors.New("invalid record")
)
