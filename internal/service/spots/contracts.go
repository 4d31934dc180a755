package spots

import (
	"context"
	"time"

	"github.com/AmeenKassem/EasyPark/internal/domain"
)

// SpotRepository is the persistence contract for spots.
type SpotRepository interface {
	Create(ctx context.Context, s *domain.Spot) (*domain.Spot, error)
	GetByID(ctx context.Context, id int64) (*domain.Spot, error)
	Update(ctx context.Context, s *domain.Spot, replaceAvailability bool) error
	Delete(ctx context.Context, id int64) error
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Spot, error)
	Search(ctx context.Context, filter domain.SpotSearchFilter) ([]*domain.Spot, error)
}

// ReservationRepository is the subset of the reservation store this service
// consults before structural spot changes.
type ReservationRepository interface {
	ExistsApprovedNotEnded(ctx context.Context, spotID int64, now time.Time) (bool, error)
}

// TransactionManager groups multi-statement spot writes.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider abstracts the clock.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the application logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
