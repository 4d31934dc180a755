package get_owner_payments

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/service/payments/models"
)

type PaymentsService interface {
	ListForOwner(ctx context.Context, ownerID int64) (*models.PaymentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
