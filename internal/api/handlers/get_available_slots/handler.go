package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TestDriveService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-TestDriveService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCarID = "некорректный ID автомобиля"
	msgMissingDate  = "дата обязательна"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast   = "нельзя выбрать прошедшую дату"
	msgCarNotFound  = "автомобиль не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/cars/{carId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID, err := handlers.PathUUID(r, "carId")
	if err != nil {
		h.logger.Warn("GET /cars/{id}/available-slots - Invalid car ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /cars/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(carID, dateStr)
	if err != nil {
		h.logger.Warn("GET /cars/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrCarNotFound):
			h.logger.Warn("GET /cars/{id}/available-slots - Car not found: car_id=%s", carID)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /cars/{id}/available-slots - Failed to get slots: car_id=%s, error=%v", carID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cars/{id}/available-slots - Slots retrieved: car_id=%s, date=%s, slots_count=%d",
		carID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
