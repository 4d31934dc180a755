package get_my_spots

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/service/spots/models"
)

type SpotsService interface {
	ListMine(ctx context.Context, ownerID int64) (*models.SpotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
