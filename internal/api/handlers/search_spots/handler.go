package search_spots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/AmeenKassem/EasyPark/internal/api/handlers"
	"github.com/AmeenKassem/EasyPark/internal/service/spots"
	"github.com/AmeenKassem/EasyPark/internal/service/spots/models"
	"github.com/AmeenKassem/EasyPark/pkg/ptr"
)

const msgInvalidFilter = "invalid search filter"

type Handler struct {
	service SpotsService
	logger  Logger
}

func NewHandler(service SpotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/spots/search?covered=true&minPrice=5&maxPrice=20
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseFilter(r)
	if err != nil {
		h.logger.Warn("GET /spots/search - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, spots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /spots/search - Failed to search spots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseFilter(r *http.Request) (*models.SearchSpotsRequest, error) {
	req := &models.SearchSpotsRequest{}
	query := r.URL.Query()

	if raw := query.Get("covered"); raw != "" {
		covered, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.Covered = ptr.Ptr(covered)
	}
	if raw := query.Get("minPrice"); raw != "" {
		minPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		req.MinPrice = ptr.Ptr(minPrice)
	}
	if raw := query.Get("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, err
		}
		req.MaxPrice = ptr.Ptr(maxPrice)
	}
	return req, nil
}
