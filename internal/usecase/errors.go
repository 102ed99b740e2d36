package usecase

import (
	"errors"
	"fmt"
)

// Handlers branch on these with errors.Is.
var (
	ErrValidation         = errors.New("invalid input")
	ErrAuth               = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("login required")
	ErrForbidden          = errors.New("unauthorized access")
	ErrNotFound           = errors.New("not found")
	ErrAlreadyBooked      = errors.New("this property is already booked")
	ErrConflict           = errors.New("conflict")
	ErrPaymentInit        = errors.New("error creating payment session")
	ErrPaymentNotVerified = errors.New("payment could not be verified")
)

// detailError matches its kind with errors.Is but prints only the detail,
// which is what ends up in the flash message.
type detailError struct {
	kind   error
	detail string
}

func (e *detailError) Error() string { return e.detail }
func (e *detailError) Unwrap() error { return e.kind }

func withDetail(kind error, format string, args ...any) error {
	return &detailError{kind: kind, detail: fmt.Sprintf(format, args...)}
}
