package get_driver_report

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

// Handle GET /api/v1/reports/driver
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	driverID := middleware.UserID(r.Context())

	result, err := h.service.DriverReport(r.Context(), driverID)
	if err != nil {
		h.logger.Error("GET /reports/driver - Failed to build report: driver_id=%d, error=%v", driverID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
