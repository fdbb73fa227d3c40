// Package validation provides the error type business cores return when a
// write is rejected because of the value of a specific field.
package validation

import (
	"errors"
	"fmt"
)

// ErrInvalid is matched by every FieldError through errors.Is.
var ErrInvalid = errors.New("validation failed")

// ErrRequired is used when a mandatory field carries no value.
var ErrRequired = errors.New("is required")

// FieldError identifies the field that caused a write to be rejected.
type FieldError struct {
	Field string
	Err   error
}

// NewFieldError constructs a FieldError for the named field.
func NewFieldError(field string, err error) *FieldError {
	return &FieldError{
		Field: field,
		Err:   err,
	}
}

// Error implements the error interface.
func (fe *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Err)
}

// Unwrap exposes the underlying cause.
func (fe *FieldError) Unwrap() error {
	return fe.Err
}

// Is reports every FieldError as an ErrInvalid.
func (fe *FieldError) Is(target error) bool {
	return target == ErrInvalid
}

// Field returns the offending field name when err carries a FieldError.
func Field(err error) (string, bool) {
	var fe *FieldError
	if !errors.As(err, &fe) {
		return "", false
	}

	return fe.Field, true
}
