// Package apperrors defines the expected failure kinds of the seller back
// end. Handlers map these to client-visible responses; anything else is a
// server error.
package apperrors

import (
	"errors"
	"fmt"
)

type kind int

const (
	kindNotFound kind = iota
	kindConflict
	kindInvalidState
	kindValidation
)

// Error is a classified, client-recoverable failure.
type Error struct {
	kind    kind
	message string
}

func (e *Error) Error() string { return e.message }

// NotFound reports an entity absent by id, email or code.
func NotFound(format string, args ...interface{}) error {
	return &Error{kind: kindNotFound, message: fmt.Sprintf(format, args...)}
}

// Conflict reports a duplicate unique key on create or update.
func Conflict(format string, args ...interface{}) error {
	return &Error{kind: kindConflict, message: fmt.Sprintf(format, args...)}
}

// InvalidState reports a state-machine guard violation.
func InvalidState(format string, args ...interface{}) error {
	return &Error{kind: kindInvalidState, message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed or missing required input.
func Validation(format string, args ...interface{}) error {
	return &Error{kind: kindValidation, message: fmt.Sprintf(format, args...)}
}

func is(err error, k kind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == k
}

func IsNotFound(err error) bool     { return is(err, kindNotFound) }
func IsConflict(err error) bool     { return is(err, kindConflict) }
func IsInvalidState(err error) bool { return is(err, kindInvalidState) }
func IsValidation(err error) bool   { return is(err, kindValidation) }
