package errors

import "errors"

var (
	ErrInvalidFormat = errors.New("invalid date or time format")

	ErrGranularity = errors.New("time is not on a 30-minute boundary")

	ErrPastSlot = errors.New("requested slot is in the past")

	ErrOutsideHours = errors.New("requested slot is outside business hours")

	ErrFullyBooked = errors.New("fully booked")

	ErrNoTablesAvailable = errors.New("no tables available")

	ErrTableTaken = errors.New("table already assigned for this slot")
)
