package update_spot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AmeenKassem/EasyPark/internal/api/handlers"
	"github.com/AmeenKassem/EasyPark/internal/api/middleware"
	"github.com/AmeenKassem/EasyPark/internal/service/spots"
	"github.com/AmeenKassem/EasyPark/internal/service/spots/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidSpotID      = "invalid spot id"
	msgSpotNotFound       = "spot not found"
	msgAccessDenied       = "you do not own this spot"
	msgSpotInUse          = "spot has an approved reservation that has not ended yet"
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

// Handle PUT /api/v1/spots/{spotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())

	spotID, err := strconv.ParseInt(mux.Vars(r)["spotId"], 10, 64)
	if err != nil || spotID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSpotID)
		return
	}

	var req models.UpdateSpotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /spots/%d - Invalid request body: %v", spotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SpotID = spotID
	req.OwnerID = ownerID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, spots.ErrSpotNotFound):
			handlers.RespondNotFound(w, msgSpotNotFound)

		case errors.Is(err, spots.ErrAccessDenied):
			h.logger.Warn("PUT /spots/%d - Access denied: owner_id=%d", spotID, ownerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, spots.ErrSpotInUse):
			handlers.RespondConflict(w, msgSpotInUse)

		case errors.Is(err, spots.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /spots/%d - Failed to update spot: owner_id=%d, error=%v", spotID, ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /spots/%d - Spot updated: owner_id=%d", spotID, ownerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
