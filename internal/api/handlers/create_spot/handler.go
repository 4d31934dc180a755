package create_spot

import (
	"errors"
	"net/http"

	"github.com/AmeenKassem/EasyPark/internal/api/handlers"
	"github.com/AmeenKassem/EasyPark/internal/api/middleware"
	"github.com/AmeenKassem/EasyPark/internal/service/spots"
	"github.com/AmeenKassem/EasyPark/internal/service/spots/models"
)

const msgInvalidRequestBody = "invalid request body"

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

// Handle POST /api/v1/spots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())

	var req models.CreateSpotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /spots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.OwnerID = ownerID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, spots.ErrInvalidInput):
			h.logger.Warn("POST /spots - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /spots - Failed to create spot: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /spots - Spot created: spot_id=%d, owner_id=%d", result.ID, ownerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
