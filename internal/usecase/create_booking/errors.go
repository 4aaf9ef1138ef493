package create_booking

import "errors"

var (
	// ErrUnauthorized возвращается, если запрос выполняется без аутентифицированного пользователя
	ErrUnauthorized = errors.New("create_booking: unauthorized")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrDateInPast возвращается, когда дата бронирования раньше сегодняшней
	ErrDateInPast = errors.New("create_booking: booking date is in the past")

	// ErrOutsideWorkingHours возвращается, когда слот вне часов работы дилера
	ErrOutsideWorkingHours = errors.New("create_booking: slot is outside working hours")

	// ErrUserNotFound возвращается, когда пользователя из токена нет в базе
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrCarUnavailable возвращается, когда автомобиль не найден или недоступен для тест-драйва
	ErrCarUnavailable = errors.New("create_booking: car is not available for test drives")

	// ErrSlotConflict возвращается, когда слот уже занят активным бронированием
	ErrSlotConflict = errors.New("create_booking: this time slot is already booked")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
