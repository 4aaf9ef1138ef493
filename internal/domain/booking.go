package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/pkg/types"
)

// BookingStatus represents the status of a test-drive booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCompleted BookingStatus = "COMPLETED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusNoShow    BookingStatus = "NO_SHOW"
)

// ParseBookingStatus возвращает статус, если строка входит в перечисление
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// IsValid returns true if the status is one of the known values
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsActive returns true for statuses that occupy a slot
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// IsTerminal returns true for statuses that can no longer change
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// Booking represents a test-drive reservation of a car
type Booking struct {
	ID          uuid.UUID
	CarID       uuid.UUID
	UserID      uuid.UUID
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Status      BookingStatus
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking holds its slot
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsTerminal returns true if the booking reached a final status
func (b *Booking) IsTerminal() bool {
	return b.Status.IsTerminal()
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.IsActive()
}

// IsOwnedBy returns true if the booking belongs to the user
func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.UserID == userID
}

// CarSummary краткая информация об автомобиле для списков бронирований
type CarSummary struct {
	ID     uuid.UUID
	Make   string
	Model  string
	Year   int
	Price  float64
	Images []string
}

// UserSummary краткая информация о клиенте для админских списков
type UserSummary struct {
	ID    uuid.UUID
	Name  string
	Email string
	Phone *string
}

// BookingDetails бронирование вместе с данными автомобиля и клиента
type BookingDetails struct {
	Booking
	Car  CarSummary
	User UserSummary
}

// BookingsFilter фильтр для выборки списков бронирований
type BookingsFilter struct {
	UserID *uuid.UUID     // только бронирования клиента (если задан)
	Status *BookingStatus // фильтр по статусу (опционально)
	Search string         // поиск по марке/модели авто и имени/email клиента
}
