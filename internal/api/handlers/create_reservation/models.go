package create_reservation

import (
	"time"

	createReservation "github.com/AmeenKassem/EasyPark/internal/usecase/create_reservation"
)

// CreateReservationRequest is the HTTP request model. Timestamps are
// RFC 3339.
type CreateReservationRequest struct {
	SpotID    int64     `json:"spotId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// ReservationResponse is the HTTP response model.
type ReservationResponse struct {
	ID           int64   `json:"id"`
	SpotID       int64   `json:"spotId"`
	SpotLocation string  `json:"spotLocation"`
	DriverID     int64   `json:"driverId"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Status       string  `json:"status"`
	TotalPrice   float64 `json:"totalPrice"`
	CreatedAt    string  `json:"createdAt"`
}

// ToUseCaseRequest converts the HTTP request for the authenticated driver.
func (r *CreateReservationRequest) ToUseCaseRequest(driverID int64) *createReservation.Request {
	return &createReservation.Request{
		DriverID:  driverID,
		SpotID:    r.SpotID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// FromUseCaseResponse converts the use case result to the HTTP response.
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:           resp.ID,
		SpotID:       resp.SpotID,
		SpotLocation: resp.SpotLocation,
		DriverID:     resp.DriverID,
		StartTime:    resp.StartTime.Format(time.RFC3339),
		EndTime:      resp.EndTime.Format(time.RFC3339),
		Status:       resp.Status,
		TotalPrice:   resp.TotalPrice,
		CreatedAt:    resp.CreatedAt.Format(time.RFC3339),
	}
}
