package model

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every ValidationError via errors.Is so callers
// can classify failures without a type assertion.
var ErrValidation = errors.New("validation failed")

// ErrNoRoomsAvailable is returned by BindReservation when the hotel has no
// room left to reserve. The hotel counter is left untouched.
var ErrNoRoomsAvailable = errors.New("no rooms available")

// ValidationError reports a malformed or missing field.  It is always
// returned synchronously by the constructor or setter that detected it and
// the receiver is never partially modified.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Is makes errors.Is(err, ErrValidation) hold for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// IsValidation reports whether err (or anything it wraps) is a validation
// failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
