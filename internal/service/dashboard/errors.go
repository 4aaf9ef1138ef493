package dashboard

import "errors"

var (
	// ErrUnauthorized возвращается, если запрос выполняется без аутентифицированного пользователя
	ErrUnauthorized = errors.New("dashboard: unauthorized")

	// ErrForbidden возвращается, когда у пользователя нет прав администратора
	ErrForbidden = errors.New("dashboard: admin access required")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("dashboard: internal error")
)
