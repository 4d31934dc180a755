package update_spot

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/service/spots/models"
)

type SpotsService interface {
	Update(ctx context.Context, req *models.UpdateSpotRequest) (*models.SpotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
