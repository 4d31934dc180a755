package reports

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/domain"
)

// ReservationRepository provides the aggregates the reports are built from.
type ReservationRepository interface {
	CountByStatusForOwner(ctx context.Context, ownerID int64) (map[domain.ReservationStatus]int64, error)
	CountByStatusForDriver(ctx context.Context, driverID int64) (map[domain.ReservationStatus]int64, error)
	SumApprovedTotalForOwner(ctx context.Context, ownerID int64) (float64, error)
	SumApprovedTotalForDriver(ctx context.Context, driverID int64) (float64, error)
}

// SpotRepository counts the owner's published spots.
type SpotRepository interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Spot, error)
}

// Logger is the application logging contract.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
