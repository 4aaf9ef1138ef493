package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCarNotFound возвращается, когда автомобиль не найден
	ErrCarNotFound = errors.New("car not found")

	// ErrUnauthorized возвращается, если запрос выполняется без аутентифицированного пользователя
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden возвращается, когда у пользователя нет прав на операцию
	ErrForbidden = errors.New("access denied")

	// ErrInvalidStatus возвращается при попытке установить статус вне перечисления
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrAlreadyTerminal возвращается при попытке изменить завершенное бронирование
	ErrAlreadyTerminal = errors.New("booking is already in a terminal status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
