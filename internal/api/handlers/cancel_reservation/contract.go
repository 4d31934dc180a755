package cancel_reservation

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/service/reservations/models"
)

type ReservationsService interface {
	Cancel(ctx context.Context, req *models.CancelRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
