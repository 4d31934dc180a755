package create_payment

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/service/payments/models"
)

type PaymentsService interface {
	Pay(ctx context.Context, req *models.PayRequest) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
