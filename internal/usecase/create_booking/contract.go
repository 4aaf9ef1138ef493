package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/internal/integrations/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ExistsActive быстрая проверка занятости (car, date, start) до вставки
	ExistsActive(ctx context.Context, carID uuid.UUID, date time.Time, startTime string) (bool, error)
	// Create возвращает booking.ErrSlotTaken при нарушении уникального индекса
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CarRepository интерфейс репозитория автомобилей
type CarRepository interface {
	GetByIDForShare(ctx context.Context, id uuid.UUID) (*domain.Car, error)
}

// DealershipRepository интерфейс репозитория дилерского центра
type DealershipRepository interface {
	GetDealership(ctx context.Context) (*domain.Dealership, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cache инвалидация производных представлений после мутации
type Cache interface {
	InvalidateBooking(ctx context.Context, carID, userID uuid.UUID) error
}

// EventPublisher публикация событий бронирования
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, event events.BookingCreatedEvent) error
}

// Metrics счетчики бронирований
type Metrics interface {
	IncBookingsCreated()
	IncBookingConflicts()
	IncCacheInvalidation(result string)
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
