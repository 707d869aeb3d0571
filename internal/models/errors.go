package models

import "errors"

// Sentinel errors shared across the core. Handlers map these to HTTP statuses
// with errors.Is; everything else is treated as an internal error.
var (
	// ErrNotFound covers missing media/users and users with no usable history.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when a user has not opted into public analysis.
	ErrForbidden = errors.New("not opted into public analysis")

	// ErrValidationFailed is returned when a structured response from the
	// text-generation service does not match the expected schema.
	ErrValidationFailed = errors.New("validation failed")
)
