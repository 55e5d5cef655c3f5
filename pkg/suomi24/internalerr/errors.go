package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnreadable      = errors.New("input unreadable")
	ErrMalformedThread = errors.New("malformed thread block")
	ErrInvalidConfig   = errors.New("invalid configuration")
)
