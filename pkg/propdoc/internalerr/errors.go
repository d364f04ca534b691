package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrExtraction      = errors.New("text extraction failed")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
