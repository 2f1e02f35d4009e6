package sync_calendar

import "errors"

var (
	// ErrSyncDisabled возвращается, когда интеграция с календарем выключена
	ErrSyncDisabled = errors.New("calendar sync is disabled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSyncFailed возвращается, когда внешний календарь недоступен
	ErrSyncFailed = errors.New("calendar sync failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
