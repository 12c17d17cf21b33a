package bee

import "errors"

// ErrValidation marks client-side validation failures. These are raised
// before any network round trip; the backend remains authoritative for
// content validation.
var ErrValidation = errors.New("validation failed")

// ValidationError describes a malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// invalid constructs a ValidationError for the given field.
func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// requireField returns a ValidationError when value is empty.
func requireField(field, value string) error {
	if value == "" {
		return invalid(field, field+" is required")
	}
	return nil
}
