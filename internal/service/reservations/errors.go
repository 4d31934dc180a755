package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrSpotNotFound is returned when the referenced spot does not exist.
	ErrSpotNotFound = errors.New("spot not found")

	// ErrAccessDenied is returned when the caller does not own the resource
	// the operation targets.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidStatus is returned when the requested target status is not a
	// decision status.
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrNotDecidable is returned when deciding a reservation that is no
	// longer PENDING.
	ErrNotDecidable = errors.New("reservation is not pending")

	// ErrCancelAfterStart is returned when cancelling at or after the
	// reservation's start time.
	ErrCancelAfterStart = errors.New("reservation already started")

	// ErrStatusConflict is returned when a concurrent writer changed the
	// reservation status first.
	ErrStatusConflict = errors.New("reservation status changed concurrently")

	// ErrInternal is returned for unexpected repository failures.
	ErrInternal = errors.New("service: internal error")
)
