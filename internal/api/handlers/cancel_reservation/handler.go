package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/AmeenKassem/EasyPark/internal/api/handlers"
	"github.com/AmeenKassem/EasyPark/internal/api/middleware"
	"github.com/AmeenKassem/EasyPark/internal/service/reservations"
	"github.com/AmeenKassem/EasyPark/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "invalid reservation id"
	msgReservationNotFound  = "reservation not found"
	msgAccessDenied         = "you are not the driver of this reservation"
	msgAlreadyStarted       = "reservation has already started and cannot be cancelled"
	msgStatusConflict       = "reservation status changed concurrently, please retry"
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

// Handle PUT /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	driverID := middleware.UserID(r.Context())

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.Cancel(r.Context(), &models.CancelRequest{
		ReservationID: reservationID,
		DriverID:      driverID,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PUT /reservations/%d/cancel - Access denied: driver_id=%d", reservationID, driverID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, reservations.ErrCancelAfterStart):
			handlers.RespondUnprocessable(w, msgAlreadyStarted)

		case errors.Is(err, reservations.ErrStatusConflict):
			handlers.RespondConflict(w, msgStatusConflict)

		default:
			h.logger.Error("PUT /reservations/%d/cancel - Failed to cancel: driver_id=%d, error=%v",
				reservationID, driverID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/%d/cancel - Reservation is %s, driver_id=%d",
		reservationID, result.Status, driverID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
