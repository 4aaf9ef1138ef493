package get_admin_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TestDriveService/internal/api/handlers"
	"github.com/m04kA/SMC-TestDriveService/internal/api/middleware"
	"github.com/m04kA/SMC-TestDriveService/internal/service/bookings"
)

const (
	msgUnauthorized  = "требуется авторизация"
	msgForbidden     = "доступ только для администратора"
	msgInvalidStatus = "некорректный статус"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/test-drives
// Query params: search, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.GetAdminBookings(r.Context(), actor, ToServiceRequest(r.URL.Query()))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidStatus):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/test-drives - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		default:
			h.logger.Error("GET /admin/test-drives - Failed to get bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/test-drives - Bookings retrieved: count=%d, user_id=%s", len(result.Bookings), actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
