package create_payment

import (
	"errors"
	"net/http"

	"github.com/AmeenKassem/EasyPark/internal/api/handlers"
	"github.com/AmeenKassem/EasyPark/internal/api/middleware"
	"github.com/AmeenKassem/EasyPark/internal/service/payments"
	"github.com/AmeenKassem/EasyPark/internal/service/payments/models"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgReservationNotFound = "reservation not found"
	msgAccessDenied        = "you are not the driver of this reservation"
	msgNotApproved         = "only approved reservations can be paid"
	msgAlreadyPaid         = "reservation is already paid"
)

type Handler struct {
	service PaymentsService
	logger  Logger
}

func NewHandler(service PaymentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	driverID := middleware.UserID(r.Context())

	var req models.PayRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.DriverID = driverID

	result, err := h.service.Pay(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("POST /payments - Access denied: driver_id=%d, reservation_id=%d", driverID, req.ReservationID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, payments.ErrNotApproved):
			handlers.RespondUnprocessable(w, msgNotApproved)

		case errors.Is(err, payments.ErrAlreadyPaid):
			handlers.RespondConflict(w, msgAlreadyPaid)

		default:
			h.logger.Error("POST /payments - Failed to create payment: driver_id=%d, reservation_id=%d, error=%v",
				driverID, req.ReservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments - Payment created: payment_id=%d, reservation_id=%d, driver_id=%d",
		result.ID, req.ReservationID, driverID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
