package get_test_drive_info

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TestDriveService/internal/api/handlers"
	"github.com/m04kA/SMC-TestDriveService/internal/service/bookings"
)

const (
	msgInvalidCarID = "некорректный ID автомобиля"
	msgCarNotFound  = "автомобиль не найден"
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

// Handle GET /api/v1/cars/{carId}/test-drive-info
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	carID, err := handlers.PathUUID(r, "carId")
	if err != nil {
		h.logger.Warn("GET /cars/{id}/test-drive-info - Invalid car ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	info, err := h.service.GetCarTestDriveInfo(r.Context(), carID)
	if err != nil {
		if errors.Is(err, bookings.ErrCarNotFound) {
			handlers.RespondNotFound(w, msgCarNotFound)
			return
		}
		h.logger.Error("GET /cars/{id}/test-drive-info - Failed to get info: car_id=%s, error=%v", carID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, info)
}
