package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда уникальный индекс активных бронирований отклонил вставку
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrUserNotFound возвращается, когда вставка ссылается на несуществующего пользователя
	ErrUserNotFound = errors.New("booking.repository: user not found")

	// ErrCarNotFound возвращается, когда вставка ссылается на несуществующий автомобиль
	ErrCarNotFound = errors.New("booking.repository: car not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
