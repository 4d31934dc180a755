package create_reservation

import (
	"context"
	"time"

	"github.com/AmeenKassem/EasyPark/internal/domain"
)

// ReservationRepository is the persistence contract the use case needs.
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	CountBlockingOverlaps(ctx context.Context, spotID int64, start, end time.Time) (int64, error)
}

// SpotRepository loads the booked spot. Inside the serializable transaction
// GetByID locks the spot row, serializing concurrent requests per spot.
type SpotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Spot, error)
}

// TransactionManager runs the overlap check and insert atomically.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider abstracts the clock for request validation.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the application logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
