package get_my_spots

import (
	"net/http"

	"github.com/AmeenKassem/EasyPark/internal/api/handlers"
	"github.com/AmeenKassem/EasyPark/internal/api/middleware"
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

// Handle GET /api/v1/spots/my
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())

	result, err := h.service.ListMine(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("GET /spots/my - Failed to list spots: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
