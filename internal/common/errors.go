// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Artifact errors.
	ErrMissingArtifact = errors.New("missing artifact")
	ErrCorruptArtifact = errors.New("corrupt artifact")

	// Input errors.
	ErrMissingInput = errors.New("missing input file")
	ErrNoRecords    = errors.New("no records to score")

	// Pipeline errors.
	ErrNonNumericFeature = errors.New("non-numeric feature value")
	ErrSchemaMismatch    = errors.New("feature schema mismatch")

	// Configuration errors.
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")
	ErrMissingConfig    = errors.New("missing configuration")

	// Database errors.
	ErrNotFound = errors.New("not found")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
