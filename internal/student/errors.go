package student

import "errors"

// ErrNotFound covers both a missing record and an identifier that is not a
// valid key at all; callers cannot tell the two apart.
var ErrNotFound = errors.New("student not found")

// ValidationError is a rule failure on input, rejected before any storage
// call. Fields carries one message per offending dotted field path.
type ValidationError struct {
	Message string
	Fields  Fields
}

func (e *ValidationError) Error() string { return e.Message }

func newValidationError(message string, fields Fields) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// DuplicateError is a uniqueness violation on code or email, translated from
// the storage constraint error.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string { return e.Field + " already exists" }
