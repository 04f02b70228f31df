package services

import "errors"

var (
	// ErrNotFound: booking, order, table or payment id unknown.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition: state machine guard violated; nothing was written.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNoAvailableTable: no free table fits the party.
	ErrNoAvailableTable = errors.New("no available table")

	// ErrCascadeStepFailed marks a single failed step inside a cancellation cascade.
	ErrCascadeStepFailed = errors.New("cascade step failed")

	// ErrConflict: the row changed under us (version check lost).
	ErrConflict = errors.New("concurrent update conflict")

	ErrValidation       = errors.New("validation failed")
	ErrBookingInactive  = errors.New("booking is not active")
	ErrTableUnavailable = errors.New("table unavailable")
)
