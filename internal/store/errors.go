package store

import "errors"

var (
	// ErrNotFound is returned when no entry exists for the given id.
	ErrNotFound = errors.New("entry not found")

	// ErrValidation is returned when a write is missing required fields.
	ErrValidation = errors.New("invalid entry")

	// ErrInvalidPattern is returned when a regex search is given a pattern
	// that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidQuery is returned when an operation requires non-empty
	// input and has no documented no-op convention for blank input.
	ErrInvalidQuery = errors.New("invalid query")
)
