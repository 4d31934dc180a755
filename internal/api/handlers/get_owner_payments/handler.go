package get_owner_payments

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

// Handle GET /api/v1/payments/owner
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())

	result, err := h.service.ListForOwner(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("GET /payments/owner - Failed to list payments: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
