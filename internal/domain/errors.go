package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the recommendation engine.
var (
	// ErrNilProfile indicates a recommendation was requested without a profile.
	ErrNilProfile = errors.New("user profile is nil")

	// ErrUnknownRequest indicates a follow-up answer referenced a request id
	// with no pending session (expired, already answered, or never issued).
	ErrUnknownRequest = errors.New("unknown or expired request id")

	// ErrUnknownOption indicates a follow-up answer referenced an option id
	// that is not part of the pending question.
	ErrUnknownOption = errors.New("unknown answer option id")

	// ErrEmptyCandidateSet indicates scoring was attempted with no candidates.
	ErrEmptyCandidateSet = errors.New("candidate set is empty")
)

// ValidationError reports a malformed UserProfile or request payload.
// It is the only error class that surfaces to the caller as a rejected
// request; every other failure is absorbed by tier fallback.
type ValidationError struct {
	Field   string // Field that failed validation, empty for whole-payload errors
	Message string // Human-readable constraint description
	Cause   error  // Underlying validator error, if any
}

// Error returns the formatted validation failure with field context.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Unwrap returns the underlying cause for error chain inspection.
func (e *ValidationError) Unwrap() error { return e.Cause }

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string, cause error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Cause: cause}
}
