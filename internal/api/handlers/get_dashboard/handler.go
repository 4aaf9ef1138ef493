package get_dashboard

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TestDriveService/internal/api/handlers"
	"github.com/m04kA/SMC-TestDriveService/internal/api/middleware"
	"github.com/m04kA/SMC-TestDriveService/internal/service/dashboard"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgForbidden    = "доступ только для администратора"
)

type Handler struct {
	service DashboardService
	logger  Logger
}

func NewHandler(service DashboardService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	stats, err := h.service.Get(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, dashboard.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, dashboard.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		default:
			h.logger.Error("GET /admin/dashboard - Failed to get stats: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, stats)
}
