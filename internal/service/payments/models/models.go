package models

import (
	"time"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	paymentRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/payment"
)

// Request models

// PayRequest settles a reservation.
type PayRequest struct {
	ReservationID int64 `json:"reservationId"`
	DriverID      int64 `json:"-"`
}

// Response models

// PaymentResponse is a payment as shown to clients.
type PaymentResponse struct {
	ID            int64      `json:"id"`
	ReservationID int64      `json:"reservationId"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	Provider      string     `json:"provider"`
	Status        string     `json:"status"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// PaymentListItem is a payment with reservation context for listings.
type PaymentListItem struct {
	PaymentResponse
	SpotID       int64  `json:"spotId"`
	SpotLocation string `json:"spotLocation"`
	DriverID     int64  `json:"driverId"`
}

// PaymentListResponse wraps a payment listing.
type PaymentListResponse struct {
	Payments []PaymentListItem `json:"payments"`
}

// FromDomainPayment converts a domain payment to a response.
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		Provider:      p.Provider,
		Status:        string(p.Status),
		PaidAt:        p.PaidAt,
		CreatedAt:     p.CreatedAt,
	}
}

// FromRepoPayments converts a joined listing.
func FromRepoPayments(rows []*paymentRepo.WithReservation) *PaymentListResponse {
	out := make([]PaymentListItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, PaymentListItem{
			PaymentResponse: *FromDomainPayment(&row.Payment),
			SpotID:          row.SpotID,
			SpotLocation:    row.SpotLocation,
			DriverID:        row.DriverID,
		})
	}
	return &PaymentListResponse{Payments: out}
}
