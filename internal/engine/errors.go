package engine

import "errors"

var (
	// ErrValidation indicates the build output failed validation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a resource was not found.
	ErrNotFound = errors.New("not found")
)
