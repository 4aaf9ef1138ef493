package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/pkg/types"
)

// Request модель запроса на бронирование тест-драйва
type Request struct {
	Actor       domain.Actor // кто бронирует
	CarID       uuid.UUID
	BookingDate string  // YYYY-MM-DD
	StartTime   string  // HH:MM
	EndTime     string  // HH:MM
	Notes       *string // опционально, до 500 символов
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          uuid.UUID
	CarID       uuid.UUID
	UserID      uuid.UUID
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      domain.BookingStatus
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// validatedRequest разобранные и проверенные поля запроса
type validatedRequest struct {
	date  time.Time
	start types.TimeString
	end   types.TimeString
	notes *string
}
