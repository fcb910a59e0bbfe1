package distribution

import (
	"fmt"
)

// MalformedInputError is returned when a descriptor cannot be decoded.
// NotObject is set when the input is valid JSON but not an object.
type MalformedInputError struct {
	Msg       string
	Cause     error
	NotObject bool
}

func (e *MalformedInputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Invalid JSON: %v", e.Cause)
	}
	return e.Msg
}

func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}

// ValidationError reports a missing or out of range descriptor field.
// An empty Reason means the field is missing.
type ValidationError struct {
	Kind   Kind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("%s: '%s' %s.", e.Kind, e.Field, e.Reason)
	case e.Field == "q":
		return fmt.Sprintf("%s requires 'q' (or provide top-level q).", e.Kind)
	default:
		return fmt.Sprintf("%s requires '%s'.", e.Kind, e.Field)
	}
}

// UnknownKindError is returned for distribution names outside the supported set.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("Unknown distribution type: %s", e.Name)
}

func missing(kind Kind, field string) error {
	return &ValidationError{Kind: kind, Field: field}
}

func invalid(kind Kind, field, reason string) error {
	return &ValidationError{Kind: kind, Field: field, Reason: reason}
}
