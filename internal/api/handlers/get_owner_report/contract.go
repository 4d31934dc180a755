package get_owner_report

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/service/reports/models"
)

type ReportsService interface {
	OwnerReport(ctx context.Context, ownerID int64) (*models.OwnerReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
