package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-TestDriveService/internal/api/handlers"
	"github.com/m04kA/SMC-TestDriveService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TestDriveService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCarID       = "некорректный ID автомобиля"
	msgUnauthorized       = "требуется авторизация"
	msgInvalidData        = "некорректные данные бронирования"
	msgDateInPast         = "нельзя забронировать тест-драйв на прошедшую дату"
	msgOutsideHours       = "выбранное время вне часов работы дилерского центра"
	msgCarUnavailable     = "автомобиль недоступен для тест-драйва"
	msgSlotConflict       = "это время уже забронировано"
	msgUserNotFound       = "пользователь не найден"
	msgBooked             = "тест-драйв забронирован"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/test-drives
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /test-drives - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /test-drives - Invalid car ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /test-drives - Slot conflict: user_id=%s, car_id=%s, date=%s, start=%s",
				actor.UserID, req.CarID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrCarUnavailable):
			handlers.RespondConflict(w, msgCarUnavailable)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /test-drives - User not found: user_id=%s", actor.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondError(w, http.StatusBadRequest, invalidInputMessage(err))

		case errors.Is(err, createBooking.ErrUnauthorized):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		default:
			h.logger.Error("POST /test-drives - Failed to create booking: user_id=%s, car_id=%s, error=%v",
				actor.UserID, req.CarID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /test-drives - Booking created: booking_id=%s, user_id=%s, car_id=%s",
		result.ID, actor.UserID, result.CarID)
	handlers.RespondMessage(w, http.StatusCreated, msgBooked, FromUseCaseResponse(result))
}

// invalidInputMessage отдает клиенту текст ошибки валидации без префикса пакета
func invalidInputMessage(err error) string {
	prefix := createBooking.ErrInvalidInput.Error() + ": "
	if msg, ok := strings.CutPrefix(err.Error(), prefix); ok && msg != "" {
		return msg
	}
	return msgInvalidData
}
