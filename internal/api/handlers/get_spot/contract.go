package get_spot

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/service/spots/models"
)

type SpotsService interface {
	GetByID(ctx context.Context, spotID int64) (*models.SpotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
