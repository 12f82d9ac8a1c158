package service

import "errors"

// Business errors surfaced to the HTTP layer. Every one of them is recovered
// at the request boundary as a flash message plus redirect; none is fatal.
var (
	ErrDuplicateIdentity    = errors.New("username or email already exists")
	ErrWeakPassword         = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrAuthenticationFailed = errors.New("invalid username or password")
	ErrValidationFailed     = errors.New("all fields are required")
	ErrInvalidCategory      = errors.New("invalid category")
	ErrRejectedUpload       = errors.New("invalid file type or size")
	ErrInternalServer       = errors.New("internal server error")
)
