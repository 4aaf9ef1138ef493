package models

import (
	"time"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	dealershipModels "github.com/m04kA/SMC-TestDriveService/internal/service/dealership/models"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса (админ)
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований текущего пользователя
type GetUserBookingsRequest struct {
	Status *string `json:"status,omitempty"`
}

// GetAdminBookingsRequest запрос на получение всех бронирований (админ)
type GetAdminBookingsRequest struct {
	Search string  `json:"search,omitempty"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          string    `json:"id"`
	CarID       string    `json:"carId"`
	UserID      string    `json:"userId"`
	BookingDate string    `json:"bookingDate"` // "2025-06-02"
	StartTime   string    `json:"startTime"`   // "10:00"
	EndTime     string    `json:"endTime"`     // "11:00"
	Status      string    `json:"status"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CarSummaryResponse краткие данные автомобиля
type CarSummaryResponse struct {
	ID     string   `json:"id"`
	Make   string   `json:"make"`
	Model  string   `json:"model"`
	Year   int      `json:"year"`
	Price  float64  `json:"price"`
	Images []string `json:"images"`
}

// UserSummaryResponse краткие данные клиента
type UserSummaryResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// BookingDetailsResponse бронирование с автомобилем и клиентом
type BookingDetailsResponse struct {
	BookingResponse
	Car  CarSummaryResponse   `json:"car"`
	User *UserSummaryResponse `json:"user,omitempty"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingDetailsResponse `json:"bookings"`
}

// CarResponse данные автомобиля для формы бронирования
type CarResponse struct {
	ID     string   `json:"id"`
	Make   string   `json:"make"`
	Model  string   `json:"model"`
	Year   int      `json:"year"`
	Price  float64  `json:"price"`
	Color  string   `json:"color"`
	Status string   `json:"status"`
	Images []string `json:"images"`
}

// UpcomingBookingResponse занятый интервал автомобиля
type UpcomingBookingResponse struct {
	ID          string `json:"id"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
}

// TestDriveInfoResponse данные для формы записи на тест-драйв
type TestDriveInfoResponse struct {
	Car              CarResponse                             `json:"car"`
	Dealership       *dealershipModels.DealershipResponse    `json:"dealership"`
	WorkingHours     []dealershipModels.WorkingHoursResponse `json:"workingHours"`
	UpcomingBookings []UpcomingBookingResponse               `json:"upcomingBookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID.String(),
		CarID:       b.CarID.String(),
		UserID:      b.UserID.String(),
		BookingDate: b.BookingDate.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Status:      string(b.Status),
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// FromDomainBookingDetails конвертирует список. withUser=false скрывает данные клиента.
func FromDomainBookingDetails(list []*domain.BookingDetails, withUser bool) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingDetailsResponse, 0, len(list)),
	}

	for _, d := range list {
		item := BookingDetailsResponse{
			BookingResponse: *FromDomainBooking(&d.Booking),
			Car: CarSummaryResponse{
				ID:     d.Car.ID.String(),
				Make:   d.Car.Make,
				Model:  d.Car.Model,
				Year:   d.Car.Year,
				Price:  d.Car.Price,
				Images: nonNilStrings(d.Car.Images),
			},
		}
		if withUser {
			item.User = &UserSummaryResponse{
				ID:    d.User.ID.String(),
				Name:  d.User.Name,
				Email: d.User.Email,
				Phone: d.User.Phone,
			}
		}
		resp.Bookings = append(resp.Bookings, item)
	}

	return resp
}

// FromDomainCar конвертирует автомобиль
func FromDomainCar(c *domain.Car) CarResponse {
	return CarResponse{
		ID:     c.ID.String(),
		Make:   c.Make,
		Model:  c.Model,
		Year:   c.Year,
		Price:  c.Price,
		Color:  c.Color,
		Status: string(c.Status),
		Images: nonNilStrings(c.Images),
	}
}

// FromDomainUpcoming конвертирует ближайшие бронирования автомобиля
func FromDomainUpcoming(list []*domain.Booking) []UpcomingBookingResponse {
	out := make([]UpcomingBookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, UpcomingBookingResponse{
			ID:          b.ID.String(),
			BookingDate: b.BookingDate.Format(domain.DateFormat),
			StartTime:   b.StartTime.String(),
			EndTime:     b.EndTime.String(),
			Status:      string(b.Status),
		})
	}
	return out
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
