package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an operation, channel, indicator or link id is unknown.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference is returned when a link endpoint is not a channel of the link's operation.
	ErrInvalidReference = errors.New("invalid reference")
)

// ValidationError reports a missing or malformed field. It is raised before
// any state is touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError for field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
