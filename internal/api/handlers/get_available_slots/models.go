package get_available_slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-TestDriveService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	CarID string `json:"carId"`
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// Slot свободный часовой интервал
type Slot struct {
	ID        string `json:"id"` // "10:00-11:00"
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			ID:        slot.ID,
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	return &AvailableSlotsResponse{
		CarID: resp.CarID.String(),
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(carID uuid.UUID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		CarID: carID,
		Date:  date,
	}, nil
}
