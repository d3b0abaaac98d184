package domain

import (
	"errors"
)

var (
	// ErrDuplicateEmail is returned when a user with the same email already exists
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrWordNotFound is returned when no word has been published yet
	ErrWordNotFound = errors.New("word of the day not found")

	// ErrValidation marks client input errors
	ErrValidation = errors.New("validation error")
)

// ValidationError carries a user-facing message and matches ErrValidation
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return ErrValidation.Error() + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with a user-facing message
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// ValidationMessage extracts the user-facing part of a validation error
func ValidationMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}
