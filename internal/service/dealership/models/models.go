package models

import (
	"github.com/m04kA/SMC-TestDriveService/internal/domain"
)

// Request модели

// WorkingHoursRequest расписание одного дня
type WorkingHoursRequest struct {
	DayOfWeek string `json:"dayOfWeek"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// UpdateWorkingHoursRequest полное недельное расписание (7 записей)
type UpdateWorkingHoursRequest struct {
	WorkingHours []WorkingHoursRequest `json:"workingHours"`
}

// Response модели

// DealershipResponse контактные данные дилерского центра
type DealershipResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// WorkingHoursResponse расписание одного дня
type WorkingHoursResponse struct {
	DayOfWeek string `json:"dayOfWeek"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// ScheduleResponse дилерский центр и его расписание.
// IsDefault = true, если расписание не настроено и используется расписание по умолчанию.
type ScheduleResponse struct {
	Dealership   *DealershipResponse    `json:"dealership"`
	WorkingHours []WorkingHoursResponse `json:"workingHours"`
	IsDefault    bool                   `json:"isDefault"`
}

// Конвертеры

// FromDomainDealership конвертирует дилера (nil допустим) в ответ с расписанием
func FromDomainDealership(d *domain.Dealership) *ScheduleResponse {
	resp := &ScheduleResponse{
		IsDefault: d == nil || len(d.WorkingHours) == 0,
	}

	if d != nil {
		resp.Dealership = &DealershipResponse{
			ID:      d.ID.String(),
			Name:    d.Name,
			Address: d.Address,
			Phone:   d.Phone,
			Email:   d.Email,
		}
	}

	resp.WorkingHours = FromDomainWorkingHours(domain.EffectiveSchedule(d))
	return resp
}

// FromDomainWorkingHours конвертирует расписание в порядке понедельник..воскресенье
func FromDomainWorkingHours(schedule []domain.WorkingHours) []WorkingHoursResponse {
	out := make([]WorkingHoursResponse, 0, len(schedule))
	for _, day := range domain.AllDays {
		wh, ok := domain.ScheduleFor(schedule, day)
		if !ok {
			continue
		}
		out = append(out, WorkingHoursResponse{
			DayOfWeek: string(wh.DayOfWeek),
			IsOpen:    wh.IsOpen,
			OpenTime:  wh.OpenTime.String(),
			CloseTime: wh.CloseTime.String(),
		})
	}
	return out
}
