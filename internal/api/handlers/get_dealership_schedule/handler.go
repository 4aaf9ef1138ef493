package get_dealership_schedule

import (
	"net/http"

	"github.com/m04kA/SMC-TestDriveService/internal/api/handlers"
)

type Handler struct {
	service DealershipService
	logger  Logger
}

func NewHandler(service DealershipService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/dealership/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.service.GetSchedule(r.Context())
	if err != nil {
		h.logger.Error("GET /dealership/schedule - Failed to get schedule: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, schedule)
}
