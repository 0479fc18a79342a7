package types

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the task store. Callers match them with
// errors.Is to decide how to surface a rejected mutation.
var (
	// ErrTaskNotFound is returned when an operation references an unknown task ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrEvidenceRequired is returned when a transition into a completion
	// state is attempted without an evidence link.
	ErrEvidenceRequired = errors.New("an evidence link is required to mark a task as completed or exceptional")

	// ErrInvalidLinkURL is returned when an external platform link does not
	// carry an http or https URL.
	ErrInvalidLinkURL = errors.New("external link must be a valid http or https URL")

	// ErrNotificationNotFound is returned when a read operation references an
	// unknown notification ID.
	ErrNotificationNotFound = errors.New("notification not found")
)

// ValidationError wraps a field-level validation failure so that the API layer
// can distinguish rejected input from internal faults.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a rejected-input failure of any kind.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrEvidenceRequired) ||
		errors.Is(err, ErrInvalidLinkURL)
}
