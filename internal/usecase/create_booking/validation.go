package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/internal/domain"
	"github.com/m04kA/SMC-TestDriveService/pkg/types"
)

// validateRequest валидирует формат входных данных
func validateRequest(req *Request) (*validatedRequest, error) {
	if !req.Actor.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	if req.CarID == uuid.Nil {
		return nil, fmt.Errorf("%w: carId is required", ErrInvalidInput)
	}

	date, err := domain.ParseDate(req.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bookingDate must be YYYY-MM-DD", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !start.IsBefore(end) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	var notes *string
	if req.Notes != nil {
		trimmed := strings.TrimSpace(*req.Notes)
		if utf8.RuneCountInString(trimmed) > domain.MaxNotesLength {
			return nil, fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		if trimmed != "" {
			notes = &trimmed
		}
	}

	return &validatedRequest{
		date:  domain.CivilDate(date),
		start: start,
		end:   end,
		notes: notes,
	}, nil
}

// validateDate проверяет, что дата не в прошлом (сегодня допустимо)
func validateDate(date, now time.Time, loc *time.Location) error {
	if domain.IsPastDate(date, now, loc) {
		return ErrDateInPast
	}
	return nil
}

// validateWorkingHours проверяет, что слот совпадает с одним из часовых слотов дня
func validateWorkingHours(schedule []domain.WorkingHours, date time.Time, start, end types.TimeString) error {
	day := domain.DayOfWeekFromTime(date)

	wh, ok := domain.ScheduleFor(schedule, day)
	if !ok || !wh.IsOpen {
		return fmt.Errorf("%w: dealership is closed on %s", ErrOutsideWorkingHours, day)
	}

	if start.Minute() != 0 || end.Minutes()-start.Minutes() != domain.SlotDurationMinutes {
		return fmt.Errorf("%w: test drives are booked in one-hour slots starting on the hour", ErrOutsideWorkingHours)
	}

	if start.Hour() < wh.OpenHour() || end.Hour() > wh.CloseHour() {
		return fmt.Errorf("%w: %s is open %d:00-%d:00", ErrOutsideWorkingHours, day, wh.OpenHour(), wh.CloseHour())
	}

	return nil
}
