package reservation

import "errors"

var (
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")
	ErrOverlapConflict     = errors.New("reservation.repository: overlapping blocking reservation")
	ErrStatusChanged       = errors.New("reservation.repository: status changed concurrently")
	ErrBuildQuery          = errors.New("reservation.repository: failed to build query")
	ErrExecQuery           = errors.New("reservation.repository: failed to execute query")
	ErrScanRow             = errors.New("reservation.repository: failed to scan row")
)
