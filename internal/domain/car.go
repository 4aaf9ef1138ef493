package domain

import "github.com/google/uuid"

// CarStatus статус автомобиля в каталоге
type CarStatus string

const (
	CarAvailable   CarStatus = "AVAILABLE"
	CarUnavailable CarStatus = "UNAVAILABLE"
	CarSold        CarStatus = "SOLD"
)

// Car автомобиль каталога (только поля, нужные для тест-драйвов)
type Car struct {
	ID       uuid.UUID
	Make     string
	Model    string
	Year     int
	Price    float64
	Color    string
	Status   CarStatus
	Featured bool
	Images   []string
}

// IsBookable returns true if a test drive can be booked for the car
func (c *Car) IsBookable() bool {
	return c.Status == CarAvailable
}
