package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TestDriveService/internal/api/handlers"
	"github.com/m04kA/SMC-TestDriveService/internal/api/middleware"
	"github.com/m04kA/SMC-TestDriveService/internal/service/bookings"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
	msgUnauthorized     = "требуется авторизация"
	msgForbidden        = "доступ запрещен"
	msgAlreadyTerminal  = "бронирование уже завершено или отменено"
	msgCancelled        = "тест-драйв отменен"
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

// Handle PATCH /api/v1/test-drives/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathUUID(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /test-drives/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	booking, err := h.service.Cancel(r.Context(), bookingID, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrForbidden):
			h.logger.Warn("PATCH /test-drives/{id}/cancel - Access denied: booking_id=%s, user_id=%s",
				bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrAlreadyTerminal):
			handlers.RespondConflict(w, msgAlreadyTerminal)

		case errors.Is(err, bookings.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		default:
			h.logger.Error("PATCH /test-drives/{id}/cancel - Failed to cancel booking: booking_id=%s, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /test-drives/{id}/cancel - Booking cancelled: booking_id=%s, user_id=%s", bookingID, actor.UserID)
	handlers.RespondMessage(w, http.StatusOK, msgCancelled, booking)
}
