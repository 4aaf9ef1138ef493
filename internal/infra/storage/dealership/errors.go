package dealership

import "errors"

var (
	// ErrDealershipNotFound возвращается, если дилерский центр еще не заведен
	ErrDealershipNotFound = errors.New("dealership.repository: dealership not found")

	// ErrQuery возвращается при ошибке запроса к БД
	ErrQuery = errors.New("dealership.repository: query failed")
)
