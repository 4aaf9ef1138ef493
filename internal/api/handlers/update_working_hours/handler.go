package update_working_hours

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TestDriveService/internal/api/handlers"
	"github.com/m04kA/SMC-TestDriveService/internal/api/middleware"
	"github.com/m04kA/SMC-TestDriveService/internal/service/dealership"
	"github.com/m04kA/SMC-TestDriveService/internal/service/dealership/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректное расписание: нужно 7 дней, время HH:MM, открытие раньше закрытия"
	msgNotFound           = "дилерский центр не найден"
	msgUnauthorized       = "требуется авторизация"
	msgForbidden          = "доступ только для администратора"
	msgUpdated            = "расписание обновлено"
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

// Handle PUT /api/v1/admin/dealership/working-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdateWorkingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/dealership/working-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateWorkingHours(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, dealership.ErrInvalidInput):
			h.logger.Warn("PUT /admin/dealership/working-hours - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, dealership.ErrDealershipNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, dealership.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, dealership.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		default:
			h.logger.Error("PUT /admin/dealership/working-hours - Failed to update schedule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/dealership/working-hours - Schedule updated by user_id=%s", actor.UserID)
	handlers.RespondMessage(w, http.StatusOK, msgUpdated, result)
}
