// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Field-specific validation errors wrap this sentinel so callers can
	// classify them with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when a task ID is malformed or non-positive.
	ErrInvalidID = errors.New("invalid ID")
)
