package repository

import "errors"

// Errors shared by all repository implementations.
var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry means an insert or update violated a unique constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// Aliases for the common cases, so call sites read naturally.
var (
	ErrUserNotFound    = ErrNotFound
	ErrSessionNotFound = ErrNotFound
)
