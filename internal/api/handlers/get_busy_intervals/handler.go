package get_busy_intervals

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/AmeenKassem/EasyPark/internal/api/handlers"
	"github.com/AmeenKassem/EasyPark/internal/service/reservations"
	"github.com/AmeenKassem/EasyPark/internal/service/reservations/models"
)

const (
	msgInvalidSpotID = "invalid spot id"
	msgInvalidRange  = "invalid time range, expected RFC 3339 timestamps with from before to"
	msgSpotNotFound  = "spot not found"
)

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/spots/{spotId}/busy?from=...&to=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	spotID, err := strconv.ParseInt(mux.Vars(r)["spotId"], 10, 64)
	if err != nil || spotID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSpotID)
		return
	}

	req := &models.BusyIntervalsRequest{SpotID: spotID}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		req.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		req.To = &to
	}

	result, err := h.service.BusyIntervals(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrSpotNotFound):
			handlers.RespondNotFound(w, msgSpotNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /spots/%d/busy - Failed to list busy intervals: error=%v", spotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
