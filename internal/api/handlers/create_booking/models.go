package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	createBooking "github.com/m04kA/SMC-TestDriveService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CarID       string  `json:"carId"`
	BookingDate string  `json:"bookingDate"` // "2025-06-02"
	StartTime   string  `json:"startTime"`   // "10:00"
	EndTime     string  `json:"endTime"`     // "11:00"
	Notes       *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          string  `json:"id"`
	CarID       string  `json:"carId"`
	UserID      string  `json:"userId"`
	BookingDate string  `json:"bookingDate"`
	StartTime   string  `json:"startTime"`
	EndTime     string  `json:"endTime"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case.
// Дата и время проверяются в use case.
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	carID, err := uuid.Parse(r.CarID)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Actor:       actor,
		CarID:       carID,
		BookingDate: r.BookingDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID.String(),
		CarID:       resp.CarID.String(),
		UserID:      resp.UserID.String(),
		BookingDate: resp.BookingDate.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
		Status:      string(resp.Status),
		Notes:       resp.Notes,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
