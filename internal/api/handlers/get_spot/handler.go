package get_spot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AmeenKassem/EasyPark/internal/api/handlers"
	"github.com/AmeenKassem/EasyPark/internal/service/spots"
)

const (
	msgInvalidSpotID = "invalid spot id"
	msgSpotNotFound  = "spot not found"
)

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

// Handle GET /api/v1/spots/{spotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spotID, err := strconv.ParseInt(mux.Vars(r)["spotId"], 10, 64)
	if err != nil || spotID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSpotID)
		return
	}

	result, err := h.service.GetByID(r.Context(), spotID)
	if err != nil {
		switch {
		case errors.Is(err, spots.ErrSpotNotFound):
			handlers.RespondNotFound(w, msgSpotNotFound)

		default:
			h.logger.Error("GET /spots/%d - Failed to get spot: error=%v", spotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
