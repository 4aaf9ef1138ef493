package domain

// Default schedule values
const (
	DefaultWeekdayOpenHour   = 9
	DefaultWeekdayCloseHour  = 18
	DefaultSaturdayOpenHour  = 10
	DefaultSaturdayCloseHour = 16
)

// Business validation constants
const (
	SlotDurationMinutes = 60
	MaxNotesLength      = 500
	MaxSearchLength     = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, занимающие слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// StatusStrings переводит статусы в строки для SQL фильтров
func StatusStrings(statuses []BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
