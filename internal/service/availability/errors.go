package availability

import "errors"

var (
	// ErrInvalidRange возвращается, когда интервал времени некорректен
	ErrInvalidRange = errors.New("invalid time range")

	// ErrEntryNotFound возвращается, когда запись расписания не найдена
	ErrEntryNotFound = errors.New("availability entry not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
