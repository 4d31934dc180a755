package search_spots

import (
	"context"

	"github.com/AmeenKassem/EasyPark/internal/service/spots/models"
)

type SpotsService interface {
	Search(ctx context.Context, req *models.SearchSpotsRequest) (*models.SpotListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
