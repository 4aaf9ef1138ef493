package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TestDriveService/pkg/types"
)

// DayOfWeek represents a weekday as stored in the working_hours table
type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

// AllDays дни недели в порядке понедельник..воскресенье
var AllDays = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DayOfWeekFromTime возвращает день недели календарной даты
func DayOfWeekFromTime(t time.Time) DayOfWeek {
	switch t.Weekday() {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}

// ParseDayOfWeek принимает имя дня в любом регистре
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	day := DayOfWeek(strings.ToUpper(strings.TrimSpace(s)))
	for _, d := range AllDays {
		if d == day {
			return day, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDayOfWeek, s)
}

// WorkingHours расписание дилерского центра на один день недели.
// Если IsOpen == false, время открытия и закрытия не используется.
type WorkingHours struct {
	DayOfWeek DayOfWeek
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// OpenHour час открытия (минуты не учитываются)
func (w WorkingHours) OpenHour() int {
	return w.OpenTime.Hour()
}

// CloseHour час закрытия (минуты не учитываются)
func (w WorkingHours) CloseHour() int {
	return w.CloseTime.Hour()
}

// Validate проверяет одну запись расписания
func (w WorkingHours) Validate() error {
	if _, err := ParseDayOfWeek(string(w.DayOfWeek)); err != nil {
		return err
	}
	if !w.IsOpen {
		return nil
	}
	if err := w.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: %s open time: %v", ErrInvalidWorkingHours, w.DayOfWeek, err)
	}
	if err := w.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: %s close time: %v", ErrInvalidWorkingHours, w.DayOfWeek, err)
	}
	if !w.OpenTime.IsBefore(w.CloseTime) {
		return fmt.Errorf("%w: %s opens at %s but closes at %s",
			ErrInvalidWorkingHours, w.DayOfWeek, w.OpenTime, w.CloseTime)
	}
	return nil
}

// Dealership дилерский центр и его недельное расписание
type Dealership struct {
	ID           uuid.UUID
	Name         string
	Address      string
	Phone        string
	Email        string
	WorkingHours []WorkingHours
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ScheduleFor возвращает расписание на день недели.
// Второе значение false, если записи для дня нет.
func (d *Dealership) ScheduleFor(day DayOfWeek) (WorkingHours, bool) {
	return ScheduleFor(d.WorkingHours, day)
}

// ScheduleFor ищет запись дня в недельном расписании
func ScheduleFor(schedule []WorkingHours, day DayOfWeek) (WorkingHours, bool) {
	for _, wh := range schedule {
		if wh.DayOfWeek == day {
			return wh, true
		}
	}
	return WorkingHours{}, false
}

// DefaultWorkingHours расписание по умолчанию, если у дилера оно не настроено:
// пн-пт 09:00-18:00, сб 10:00-16:00, вс выходной
func DefaultWorkingHours() []WorkingHours {
	schedule := make([]WorkingHours, 0, len(AllDays))
	for _, day := range AllDays {
		wh := WorkingHours{DayOfWeek: day}
		switch day {
		case Saturday:
			wh.IsOpen = true
			wh.OpenTime = types.FromHour(DefaultSaturdayOpenHour)
			wh.CloseTime = types.FromHour(DefaultSaturdayCloseHour)
		case Sunday:
		default:
			wh.IsOpen = true
			wh.OpenTime = types.FromHour(DefaultWeekdayOpenHour)
			wh.CloseTime = types.FromHour(DefaultWeekdayCloseHour)
		}
		schedule = append(schedule, wh)
	}
	return schedule
}

// ValidateWeeklySchedule проверяет полное недельное расписание:
// ровно одна запись на каждый день недели, каждая запись валидна
func ValidateWeeklySchedule(schedule []WorkingHours) error {
	if len(schedule) != len(AllDays) {
		return fmt.Errorf("%w: expected %d entries, got %d", ErrInvalidWorkingHours, len(AllDays), len(schedule))
	}

	seen := make(map[DayOfWeek]struct{}, len(schedule))
	for _, wh := range schedule {
		if err := wh.Validate(); err != nil {
			return err
		}
		if _, dup := seen[wh.DayOfWeek]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateDayOfWeek, wh.DayOfWeek)
		}
		seen[wh.DayOfWeek] = struct{}{}
	}
	return nil
}

// CheckNoDuplicateDays проверяет, что у дня недели не больше одной записи
func CheckNoDuplicateDays(schedule []WorkingHours) error {
	seen := make(map[DayOfWeek]struct{}, len(schedule))
	for _, wh := range schedule {
		if _, dup := seen[wh.DayOfWeek]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateDayOfWeek, wh.DayOfWeek)
		}
		seen[wh.DayOfWeek] = struct{}{}
	}
	return nil
}

// EffectiveSchedule расписание дилера, а если оно не настроено, расписание по умолчанию
func EffectiveSchedule(d *Dealership) []WorkingHours {
	if d == nil || len(d.WorkingHours) == 0 {
		return DefaultWorkingHours()
	}
	return d.WorkingHours
}
