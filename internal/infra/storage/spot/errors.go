package spot

import "errors"

var (
	// ErrSpotNotFound is returned when a spot does not exist.
	ErrSpotNotFound = errors.New("spot.repository: parking spot not found")

	// ErrSpotHasReservations is returned when a delete is rejected by the
	// reservations foreign key. Reservation rows are never deleted, so a
	// spot with any reservation history cannot be removed.
	ErrSpotHasReservations = errors.New("spot.repository: spot has reservation history")

	// ErrBuildQuery is returned when SQL generation fails.
	ErrBuildQuery = errors.New("spot.repository: failed to build query")

	// ErrExecQuery is returned when SQL execution fails.
	ErrExecQuery = errors.New("spot.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("spot.repository: failed to scan row")
)
