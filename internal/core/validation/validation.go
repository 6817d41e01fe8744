// Package validation holds the field rules shared by the domain entities.
package validation

import (
	"errors"
	"strings"
)

// ErrInvalid matches every ValidationError via errors.Is.
var ErrInvalid = errors.New("validation failed")

// ValidationError reports a violated entity invariant.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrInvalid) true for any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

// New returns a ValidationError for field.
func New(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Required fails when value is empty or whitespace only.
func Required(field, value, message string) error {
	if strings.TrimSpace(value) == "" {
		return New(field, message)
	}
	return nil
}

// FieldOf returns the offending field of a validation error, or "" when err
// is not one.
func FieldOf(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Field
	}
	return ""
}
