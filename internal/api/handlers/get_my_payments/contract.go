package get_my_payments

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/service/payments/models"
)

type PaymentsService interface {
	ListForDriver(ctx context.Context, driverID int64) (*models.PaymentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
