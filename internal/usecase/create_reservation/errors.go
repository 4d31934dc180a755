package create_reservation

import "errors"

var (
	// ErrSpotNotFound is returned when the spot does not exist.
	ErrSpotNotFound = errors.New("create_reservation: spot not found")

	// ErrSpotInactive is returned when the spot is not published.
	ErrSpotInactive = errors.New("create_reservation: spot is not active")

	// ErrOwnSpot is returned when a driver books their own spot.
	ErrOwnSpot = errors.New("create_reservation: cannot reserve your own spot")

	// ErrSpotClosed is returned for spots with no declared availability.
	ErrSpotClosed = errors.New("create_reservation: spot has no availability defined")

	// ErrOutsideAvailability is returned when the requested range is not
	// covered by the spot's availability.
	ErrOutsideAvailability = errors.New("create_reservation: requested time is outside the spot availability")

	// ErrCrossMidnight is returned when a request on a recurring spot does
	// not start and end on the same calendar day.
	ErrCrossMidnight = errors.New("create_reservation: request cannot span across midnight")

	// ErrOverlap is returned when a blocking reservation already holds part
	// of the requested range.
	ErrOverlap = errors.New("create_reservation: time range is already reserved")

	// ErrInvalidInput is returned for malformed request data.
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal is returned for unexpected failures.
	ErrInternal = errors.New("create_reservation: internal error")
)
