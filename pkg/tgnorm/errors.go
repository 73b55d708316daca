package tgnorm

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord indicates that a required raw field is missing or has the wrong shape.
	ErrMalformedRecord = errors.New("tgnorm: malformed record")
	// ErrResolution indicates that a peer resolver or keyboard builder could not resolve a reference.
	ErrResolution = errors.New("tgnorm: resolution failure")
)

// FieldError describes one malformed raw field.
type FieldError struct {
	// Field is the dotted record path, for example "fwd_from.date".
	Field string
	// Reason describes what is wrong with the field.
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field %s: %s", ErrMalformedRecord, e.Field, e.Reason)
}

// Unwrap exposes ErrMalformedRecord to errors.Is.
func (e *FieldError) Unwrap() error {
	return ErrMalformedRecord
}

// ResolutionError wraps a collaborator failure without altering it.
type ResolutionError struct {
	// Op names the resolution step, for example "resolve chat".
	Op string
	// Err is the collaborator error, returned unmodified by Unwrap.
	Err error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the collaborator error.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// Is reports ErrResolution as a match so callers can classify the failure.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

func missingField(field string) error {
	return &FieldError{Field: field, Reason: "required"}
}

func wrongShape(field string, want string, got any) error {
	return &FieldError{Field: field, Reason: fmt.Sprintf("want %s, got %T", want, got)}
}
