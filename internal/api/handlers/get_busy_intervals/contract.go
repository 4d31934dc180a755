package get_busy_intervals

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/service/reservations/models"
)

type ReservationsService interface {
	BusyIntervals(ctx context.Context, req *models.BusyIntervalsRequest) (*models.BusyIntervalsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
