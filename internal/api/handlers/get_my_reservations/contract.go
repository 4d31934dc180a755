package get_my_reservations

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/service/reservations/models"
)

type ReservationsService interface {
	ListForDriver(ctx context.Context, driverID int64) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
