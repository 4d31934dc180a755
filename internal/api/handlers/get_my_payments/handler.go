package get_my_payments

import (
	"net/http"

	"github.com/AmeenKassem/EasyPark/internal/api/handlers"
	"github.com/AmeenKassem/EasyPark/internal/api/middleware"
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

// Handle GET /api/v1/payments/my
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	driverID := middleware.UserID(r.Context())

	result, err := h.service.ListForDriver(r.Context(), driverID)
	if err != nil {
		h.logger.Error("GET /payments/my - Failed to list payments: driver_id=%d, error=%v", driverID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
