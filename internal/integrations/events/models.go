package events

import "time"

// Routing keys
const (
	RoutingKeyBooked        = "testdrive.booked"
	RoutingKeyStatusChanged = "testdrive.status_changed"
)

// BookingCreatedEvent публикуется после создания бронирования
type BookingCreatedEvent struct {
	BookingID   string    `json:"bookingId"`
	CarID       string    `json:"carId"`
	UserID      string    `json:"userId"`
	BookingDate string    `json:"bookingDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// BookingStatusChangedEvent публикуется после смены статуса бронирования
type BookingStatusChangedEvent struct {
	BookingID  string    `json:"bookingId"`
	CarID      string    `json:"carId"`
	UserID     string    `json:"userId"`
	OldStatus  string    `json:"oldStatus"`
	NewStatus  string    `json:"newStatus"`
	ChangedBy  string    `json:"changedBy"`
	OccurredAt time.Time `json:"occurredAt"`
}
