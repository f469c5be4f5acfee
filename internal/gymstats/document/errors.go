package document

import (
	"errors"
	"fmt"
)

var (
	ErrInvalid  = errors.New("invalid input")
	ErrConflict = errors.New("conflict")
)

// InputError carries a message meant to be shown to the user as is.
type InputError struct {
	Message  string
	conflict bool
}

func (e *InputError) Error() string {
	return e.Message
}

func (e *InputError) Unwrap() []error {
	if e.conflict {
		return []error{ErrConflict, ErrInvalid}
	}
	return []error{ErrInvalid}
}

func Invalidf(format string, args ...any) error {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// Conflictf builds a validation error that is also a conflict.
func Conflictf(format string, args ...any) error {
	return &InputError{Message: fmt.Sprintf(format, args...), conflict: true}
}

// UserMessage returns the user facing message of err, or fallback when err
// is not an input error.
func UserMessage(err error, fallback string) string {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Message
	}
	return fallback
}
