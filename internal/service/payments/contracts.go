package payments

import (
	"context"
	"time"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	paymentRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/payment"
	reservationRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/reservation"
)

// PaymentRepository is the persistence contract for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	ListByDriver(ctx context.Context, driverID int64) ([]*paymentRepo.WithReservation, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*paymentRepo.WithReservation, error)
}

// ReservationRepository is the subset of the reservation store this service
// reads.
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*reservationRepo.WithSpot, error)
}

// TimeProvider abstracts the clock for settlement timestamps.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the application logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
