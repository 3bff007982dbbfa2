// Package common defines sentinel errors and small helpers shared by the
// Dayscribe client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Storage errors.
	ErrorNotFound     = errors.New("not found")
	ErrCorruptedState = errors.New("corrupted local state")

	// Validation errors. Specific input errors wrap ErrValidation.
	ErrValidation = errors.New("validation error")

	// Ownership errors.
	ErrForeignOwner = errors.New("task collection belongs to another user")

	// Session errors.
	ErrNotLoggedIn = errors.New("not logged in")
)
