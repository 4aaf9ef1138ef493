package dealership

import "errors"

var (
	// ErrDealershipNotFound возвращается, когда дилерский центр не заведен
	ErrDealershipNotFound = errors.New("dealership: dealership not found")

	// ErrUnauthorized возвращается, если запрос выполняется без аутентифицированного пользователя
	ErrUnauthorized = errors.New("dealership: unauthorized")

	// ErrForbidden возвращается, когда у пользователя нет прав администратора
	ErrForbidden = errors.New("dealership: admin access required")

	// ErrInvalidInput возвращается при некорректном расписании
	ErrInvalidInput = errors.New("dealership: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("dealership: internal error")
)
