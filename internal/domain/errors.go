package domain

import "errors"

// Sentinel errors returned by repositories and services. The HTTP layer maps
// these to status codes; everything else is treated as an internal error.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
)
