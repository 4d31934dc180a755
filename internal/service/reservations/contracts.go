package reservations

import (
	"context"
	"time"

	"github.com/AmeenKassem/EasyPark/internal/domain"
	reservationRepo "github.com/AmeenKassem/EasyPark/internal/infra/storage/reservation"
	"github.com/AmeenKassem/EasyPark/internal/integrations/userservice"
)

// ReservationRepository is the persistence contract for reservations.
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*reservationRepo.WithSpot, error)
	ListByDriver(ctx context.Context, driverID int64) ([]*reservationRepo.WithSpot, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*reservationRepo.WithSpot, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.ReservationStatus) error
	FindBlockingIntervals(ctx context.Context, spotID int64, from, to time.Time) ([]reservationRepo.Interval, error)
}

// SpotRepository is the subset of the spot store this service reads.
type SpotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Spot, error)
}

// UserServiceClient resolves user profiles for notification email.
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error)
}

// Mailer sends the approval notification.
type Mailer interface {
	Send(toName, toAddr, subject, plainText, htmlContent string) error
}

// TimeProvider abstracts the clock for lifecycle checks.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the application logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
