package payments

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrAccessDenied is returned when the caller is not the reservation's
	// driver.
	ErrAccessDenied = errors.New("access denied")

	// ErrNotApproved is returned when paying a reservation that is not
	// APPROVED.
	ErrNotApproved = errors.New("reservation is not approved")

	// ErrAlreadyPaid is returned when the reservation already has a payment.
	ErrAlreadyPaid = errors.New("reservation already paid")

	// ErrInternal is returned for unexpected repository failures.
	ErrInternal = errors.New("service: internal error")
)
