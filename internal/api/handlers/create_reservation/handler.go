package create_reservation

import (
	"errors"
	"net/http"

	"github.com/AmeenKassem/EasyPark/internal/api/handlers"
	"github.com/AmeenKassem/EasyPark/internal/api/middleware"
	createReservation "github.com/AmeenKassem/EasyPark/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgSpotNotFound        = "spot not found"
	msgSpotInactive        = "spot is not active"
	msgOwnSpot             = "you cannot reserve your own spot"
	msgSpotClosed          = "spot has no availability defined"
	msgOutsideAvailability = "requested time is outside the spot availability"
	msgCrossMidnight       = "reservation cannot span across midnight on this spot"
	msgOverlap             = "the requested time range is already reserved"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	driverID := middleware.UserID(r.Context())

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(driverID))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSpotNotFound):
			h.logger.Warn("POST /reservations - Spot not found: spot_id=%d", req.SpotID)
			handlers.RespondNotFound(w, msgSpotNotFound)

		case errors.Is(err, createReservation.ErrSpotInactive):
			h.logger.Warn("POST /reservations - Spot inactive: spot_id=%d", req.SpotID)
			handlers.RespondUnprocessable(w, msgSpotInactive)

		case errors.Is(err, createReservation.ErrOwnSpot):
			h.logger.Warn("POST /reservations - Own spot: driver_id=%d, spot_id=%d", driverID, req.SpotID)
			handlers.RespondForbidden(w, msgOwnSpot)

		case errors.Is(err, createReservation.ErrSpotClosed):
			h.logger.Warn("POST /reservations - Spot closed: spot_id=%d", req.SpotID)
			handlers.RespondUnprocessable(w, msgSpotClosed)

		case errors.Is(err, createReservation.ErrCrossMidnight):
			h.logger.Warn("POST /reservations - Cross-midnight request: spot_id=%d", req.SpotID)
			handlers.RespondUnprocessable(w, msgCrossMidnight)

		case errors.Is(err, createReservation.ErrOutsideAvailability):
			h.logger.Warn("POST /reservations - Outside availability: spot_id=%d", req.SpotID)
			handlers.RespondUnprocessable(w, msgOutsideAvailability)

		case errors.Is(err, createReservation.ErrOverlap):
			h.logger.Warn("POST /reservations - Overlap: spot_id=%d", req.SpotID)
			handlers.RespondConflict(w, msgOverlap)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: driver_id=%d, spot_id=%d, error=%v",
				driverID, req.SpotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, driver_id=%d, spot_id=%d",
		result.ID, driverID, req.SpotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
