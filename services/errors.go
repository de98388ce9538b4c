package services

import (
	"errors"
	"fmt"
)

// ValidationError means the request itself is incomplete or malformed.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// PreconditionError means the request is well formed but the tabs are not in a state
// that allows it.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

var ErrNotFound = errors.New("not found")

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func preconditionf(format string, args ...any) error {
	return &PreconditionError{Message: fmt.Sprintf(format, args...)}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsPrecondition(err error) bool {
	var p *PreconditionError
	return errors.As(err, &p)
}

var (
	errNoMethod      = &ValidationError{Message: "no payment method selected"}
	errEmptyCart     = &ValidationError{Message: "empty cart"}
	errNoItems       = &ValidationError{Message: "no items selected"}
	errInvalidTarget = &PreconditionError{Message: "invalid target"}
)
