package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	CarID uuid.UUID // ID автомобиля
	Date  time.Time // Дата (время не учитывается)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	CarID uuid.UUID
	Date  time.Time
	Slots []domain.Slot // в порядке от открытия к закрытию
}
