package domain

import (
	"fmt"
	"strings"
)

// NonFieldErrors is the field name used for errors that span several fields.
const NonFieldErrors = "non_field_errors"

// Field error messages shared by every resource.
const (
	MsgRequired   = "This field is required."
	MsgBlank      = "This field may not be blank."
	MsgInvalidNum = "A valid number is required."
)

// FieldError is a single problem with one input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every field problem found while validating one payload.
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError creates a ValidationError, seeded with problems found while decoding
func NewValidationError(seed ...FieldError) *ValidationError {
	return &ValidationError{Errors: append([]FieldError(nil), seed...)}
}

// Add records a problem for a field
func (e *ValidationError) Add(field, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: message})
}

// Addf records a formatted problem for a field
func (e *ValidationError) Addf(field, format string, args ...any) {
	e.Add(field, fmt.Sprintf(format, args...))
}

// Has reports whether the field already has a problem recorded
func (e *ValidationError) Has(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Require records MsgRequired for an absent field. Partial payloads and fields that
// already failed to decode are left alone.
func (e *ValidationError) Require(field string, partial bool) {
	if !partial && !e.Has(field) {
		e.Add(field, MsgRequired)
	}
}

// Empty reports whether no problems were recorded
func (e *ValidationError) Empty() bool {
	return len(e.Errors) == 0
}

// OrNil returns nil when no problems were recorded, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrInvalidInput) hold for validation failures
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// InvalidPKMessage is reported when a related id is outside the caller's choices.
func InvalidPKMessage(id int64) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}

// ValidateName checks a required, trimmed name field and returns the trimmed value.
// A nil value is only a problem when the payload is not partial.
func ValidateName(verr *ValidationError, field string, value *string, partial bool) string {
	if value == nil {
		verr.Require(field, partial)
		return ""
	}
	name := strings.TrimSpace(*value)
	if name == "" {
		verr.Add(field, MsgBlank)
		return ""
	}
	if len([]rune(name)) > MaxNameLength {
		verr.Addf(field, "Ensure this field has no more than %d characters.", MaxNameLength)
		return ""
	}
	return name
}
