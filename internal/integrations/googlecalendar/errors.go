package googlecalendar

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие отсутствует во внешнем календаре
	ErrEventNotFound = errors.New("googlecalendar client: event not found")

	// ErrSyncDisabled возвращается, когда интеграция выключена в конфигурации
	ErrSyncDisabled = errors.New("googlecalendar client: sync is disabled")

	// ErrInternal возвращается при внутренних ошибках клиента
	// Внешний календарь - best-effort: вызывающая сторона логирует эту ошибку,
	// но никогда не откатывает из-за нее бронирование
	ErrInternal = errors.New("googlecalendar client: internal error")
)
