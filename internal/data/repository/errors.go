package repository

import "errors"

var (
	// ErrPropertyBooked is returned when a conditional lock finds the property already booked.
	ErrPropertyBooked = errors.New("property already booked")
	// ErrBookingNotPending is returned when confirming a booking that left the pending state.
	ErrBookingNotPending = errors.New("booking is not pending")
	ErrBookingNotFound   = errors.New("booking not found")

	// ErrUsernameTaken and ErrEmailTaken report a unique violation on users.
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already registered")
)
