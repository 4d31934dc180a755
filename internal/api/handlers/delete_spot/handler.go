package delete_spot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AmeenKassem/EasyPark/internal/api/handlers"
	"github.com/AmeenKassem/EasyPark/internal/api/middleware"
	"github.com/AmeenKassem/EasyPark/internal/service/spots"
)

const (
	msgInvalidSpotID  = "invalid spot id"
	msgSpotNotFound   = "spot not found"
	msgAccessDenied   = "you do not own this spot"
	msgSpotInUse      = "spot has an approved reservation that has not ended yet"
	msgSpotHasHistory = "spot has reservation history and cannot be deleted"
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

// Handle DELETE /api/v1/spots/{spotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())

	spotID, err := strconv.ParseInt(mux.Vars(r)["spotId"], 10, 64)
	if err != nil || spotID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSpotID)
		return
	}

	if err := h.service.Delete(r.Context(), spotID, ownerID); err != nil {
		switch {
		case errors.Is(err, spots.ErrSpotNotFound):
			handlers.RespondNotFound(w, msgSpotNotFound)

		case errors.Is(err, spots.ErrAccessDenied):
			h.logger.Warn("DELETE /spots/%d - Access denied: owner_id=%d", spotID, ownerID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, spots.ErrSpotInUse):
			handlers.RespondConflict(w, msgSpotInUse)

		case errors.Is(err, spots.ErrSpotHasReservations):
			handlers.RespondConflict(w, msgSpotHasHistory)

		default:
			h.logger.Error("DELETE /spots/%d - Failed to delete spot: owner_id=%d, error=%v", spotID, ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /spots/%d - Spot deleted: owner_id=%d", spotID, ownerID)
	w.WriteHeader(http.StatusNoContent)
}
