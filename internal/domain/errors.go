package domain

import "errors"

var (
	// ErrUnknownStatus возвращается, если строка не является статусом бронирования
	ErrUnknownStatus = errors.New("domain: unknown booking status")

	// ErrUnknownDayOfWeek возвращается, если строка не является днем недели
	ErrUnknownDayOfWeek = errors.New("domain: unknown day of week")

	// ErrInvalidWorkingHours возвращается при некорректном расписании
	ErrInvalidWorkingHours = errors.New("domain: invalid working hours")

	// ErrDuplicateDayOfWeek возвращается, если день недели встречается в расписании дважды
	ErrDuplicateDayOfWeek = errors.New("domain: duplicate day of week in schedule")
)
