package service

import "errors"

// Business-rule failures are always one of these, recovered at the
// operation boundary and mapped to HTTP by the handlers. The engines
// never auto-correct; they refuse with a typed error.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidState     = errors.New("operation not allowed in current status")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyResponded = errors.New("temporisation already responded")
	ErrQuotaExceeded    = errors.New("voyage quota exceeded")
	ErrConflict         = errors.New("concurrent modification or duplicate key")
)

// ValidationError is a field-level rule violation, displayable next to the
// offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
