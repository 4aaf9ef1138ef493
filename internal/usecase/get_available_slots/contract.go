package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
)

// CarRepository интерфейс репозитория автомобилей
type CarRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByCarAndDate получает PENDING/CONFIRMED бронирования автомобиля на дату
	GetActiveByCarAndDate(ctx context.Context, carID uuid.UUID, date time.Time) ([]*domain.Booking, error)
}

// DealershipRepository интерфейс репозитория дилерского центра
type DealershipRepository interface {
	GetDealership(ctx context.Context) (*domain.Dealership, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
