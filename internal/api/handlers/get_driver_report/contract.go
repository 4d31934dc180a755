package get_driver_report

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/service/reports/models"
)

type ReportsService interface {
	DriverReport(ctx context.Context, driverID int64) (*models.DriverReportResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
