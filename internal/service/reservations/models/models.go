package models

import (
	"time"

	reservationRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/reservation"
)

// Request models

// UpdateStatusRequest is the owner's decision on a pending reservation.
type UpdateStatusRequest struct {
	ReservationID int64
	OwnerID       int64
	Status        string
}

// CancelRequest is the driver's cancellation of a reservation.
type CancelRequest struct {
	ReservationID int64
	DriverID      int64
}

// BusyIntervalsRequest asks for the occupied ranges of a spot. From and To
// default to one year around the current time when omitted.
type BusyIntervalsRequest struct {
	SpotID int64
	From   *time.Time
	To     *time.Time
}

// Response models

// ReservationResponse is a reservation as shown in listings.
type ReservationResponse struct {
	ID           int64     `json:"id"`
	SpotID       int64     `json:"spotId"`
	SpotLocation string    `json:"spotLocation"`
	DriverID     int64     `json:"driverId"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Status       string    `json:"status"`
	TotalPrice   float64   `json:"totalPrice"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ReservationListResponse wraps a reservation listing.
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// IntervalResponse is one busy range of a spot.
type IntervalResponse struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// BusyIntervalsResponse lists the busy ranges of a spot within the window.
type BusyIntervalsResponse struct {
	SpotID    int64              `json:"spotId"`
	From      time.Time          `json:"from"`
	To        time.Time          `json:"to"`
	Intervals []IntervalResponse `json:"intervals"`
}

// FromRepoReservation converts a joined repository row to a response.
func FromRepoReservation(r *reservationRepo.WithSpot) ReservationResponse {
	return ReservationResponse{
		ID:           r.ID,
		SpotID:       r.SpotID,
		SpotLocation: r.SpotLocation,
		DriverID:     r.DriverID,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Status:       string(r.Status),
		TotalPrice:   r.TotalPrice,
		CreatedAt:    r.CreatedAt,
	}
}

// FromRepoReservations converts a listing.
func FromRepoReservations(rows []*reservationRepo.WithSpot) *ReservationListResponse {
	out := make([]ReservationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromRepoReservation(r))
	}
	return &ReservationListResponse{Reservations: out}
}
