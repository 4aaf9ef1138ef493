package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/internal/integrations/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	// GetByIDForUpdate блокирует строку до конца транзакции
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) (time.Time, error)
	ListDetails(ctx context.Context, filter domain.BookingsFilter) ([]*domain.BookingDetails, error)
	GetUpcomingByCar(ctx context.Context, carID uuid.UUID, from time.Time) ([]*domain.Booking, error)
}

// CarRepository интерфейс репозитория автомобилей
type CarRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)
}

// DealershipRepository интерфейс репозитория дилерского центра
type DealershipRepository interface {
	GetDealership(ctx context.Context) (*domain.Dealership, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cache кэш производных списков бронирований
type Cache interface {
	Version(ctx context.Context, scope string) (int64, error)
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
	InvalidateBooking(ctx context.Context, carID, userID uuid.UUID) error
}

// EventPublisher публикация событий бронирования
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event events.BookingStatusChangedEvent) error
}

// Metrics счетчики переходов статусов
type Metrics interface {
	IncStatusTransition(from, to string)
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
