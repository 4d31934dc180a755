package get_owner_reservations

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/service/reservations/models"
)

type ReservationsService interface {
	ListForOwner(ctx context.Context, ownerID int64) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
