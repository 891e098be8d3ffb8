package task

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a task does not exist or is owned by a
// different user. The two cases are deliberately indistinguishable so
// that callers cannot probe for the existence of other users' tasks.
var ErrNotFound = errors.New("task not found")

// ValidationError reports a rejected input with field-level detail.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
