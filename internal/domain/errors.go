package domain

import "errors"

// Sentinel errors shared across services and repositories. Layers wrap them
// with fmt.Errorf("...: %w", err) so callers can classify with errors.Is.
var (
	// ErrNotFound is returned when an entity referenced by ID does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned when input is missing a required reference or name.
	ErrValidation = errors.New("invalid input")
	// ErrConflict is returned on a duplicate natural key or an optimistic
	// concurrency failure surfaced by the storage layer.
	ErrConflict = errors.New("conflict")
)
