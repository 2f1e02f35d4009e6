package get_available_dates

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrAddonNotFound возвращается, когда дополнение не найдено
	ErrAddonNotFound = errors.New("addon not found")

	// ErrNotAnAddon возвращается, когда в списке дополнений передана основная услуга
	ErrNotAnAddon = errors.New("service is not an addon")

	// ErrIsAddon возвращается, когда дополнение передано как основная услуга
	ErrIsAddon = errors.New("addon cannot be booked as a main service")

	// ErrInvalidRange возвращается при некорректном периоде дат
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
