package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/pkg/types"
)

// ComputeSlots строит свободные часовые слоты на дату.
//
// Слоты идут с шагом в час от часа открытия до часа закрытия, минуты открытия
// и закрытия не учитываются (09:30-17:30 дает слоты 09:00..16:00-17:00).
// Закрытый день или день без записи в расписании дает пустой список.
//
// Слот исключается, если у активного бронирования на ту же дату совпадает
// время начала ИЛИ время окончания со слотом.
func ComputeSlots(date time.Time, schedule []domain.WorkingHours, bookings []*domain.Booking) []domain.Slot {
	slots := make([]domain.Slot, 0)

	wh, ok := domain.ScheduleFor(schedule, domain.DayOfWeekFromTime(date))
	if !ok || !wh.IsOpen {
		return slots
	}

	openHour, closeHour := wh.OpenHour(), wh.CloseHour()
	if openHour < 0 || closeHour < 0 {
		return slots
	}

	for hour := openHour; hour < closeHour; hour++ {
		start := types.FromHour(hour)
		end := types.FromHour(hour + 1)

		if isTaken(date, start, end, bookings) {
			continue
		}

		slots = append(slots, domain.NewSlot(start, end))
	}

	return slots
}

// isTaken проверяет совпадение слота с активным бронированием на эту дату
func isTaken(date time.Time, start, end types.TimeString, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if !b.IsActive() || !domain.SameDate(b.BookingDate, date) {
			continue
		}
		if b.StartTime.Minutes() == start.Minutes() || b.EndTime.Minutes() == end.Minutes() {
			return true
		}
	}
	return false
}
