package get_owner_report

import (
	"net/http"

	"github.com/AmeenKassem/EasyPark/internal/api/handlers"
	"github.com/AmeenKassem/EasyPark/internal/api/middleware"
)

type Handler struct {
	service ReportsService
	logger  Logger
}

func NewHandler(service ReportsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reports/owner
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.UserID(r.Context())

	result, err := h.service.OwnerReport(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("GET /reports/owner - Failed to build report: owner_id=%d, error=%v", ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
