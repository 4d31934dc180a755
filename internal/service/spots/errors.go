package spots

import "errors"

var (
	// ErrSpotNotFound is returned when the spot does not exist.
	ErrSpotNotFound = errors.New("spot not found")

	// ErrAccessDenied is returned when the caller does not own the spot.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput is returned for malformed request data, including a
	// malformed availability declaration.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSpotInUse is returned when a structural change is attempted while
	// an APPROVED reservation has not yet ended.
	ErrSpotInUse = errors.New("spot has an active approved reservation")

	// ErrSpotHasReservations is returned when a delete is refused because
	// the spot carries reservation history. Reservations are never deleted,
	// so the spot outlives them.
	ErrSpotHasReservations = errors.New("spot has reservation history")

	// ErrInternal is returned for unexpected repository failures.
	ErrInternal = errors.New("service: internal error")
)
