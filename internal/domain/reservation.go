package domain

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusApproved  ReservationStatus = "APPROVED"
	StatusRejected  ReservationStatus = "REJECTED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

// BlockingStatuses are the states counted for overlap detection. A PENDING
// request already holds the slot until the owner decides; REJECTED and
// CANCELLED reservations never block.
var BlockingStatuses = []ReservationStatus{StatusPending, StatusApproved}

// Reservation is a driver's booking of a spot for a half-open time range
// [StartTime, EndTime). Reservations are never deleted; status transitions
// are the only mutation path after creation.
type Reservation struct {
	ID         int64
	SpotID     int64
	DriverID   int64
	StartTime  time.Time
	EndTime    time.Time
	Status     ReservationStatus
	TotalPrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking reports whether the reservation holds its time range against
// other requests.
func (r *Reservation) IsBlocking() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// IsTerminal reports whether no further transitions are possible.
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusRejected || r.Status == StatusCancelled
}

// ParseReservationStatus validates a raw status string.
func ParseReservationStatus(raw string) (ReservationStatus, bool) {
	switch ReservationStatus(raw) {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return ReservationStatus(raw), true
	}
	return "", false
}

// Overlaps reports whether two half-open ranges intersect. Touching
// endpoints do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}
