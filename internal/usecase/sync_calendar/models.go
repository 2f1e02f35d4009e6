package sync_calendar

import "time"

// defaultWindowDays окно сверки, когда период не задан явно
const defaultWindowDays = 30

// Request модель запроса на пакетную сверку с внешним календарем
// Нулевые даты заменяются окном [сегодня, сегодня+defaultWindowDays]
type Request struct {
	From time.Time // Начало периода (включительно)
	To   time.Time // Конец периода (включительно)
}

// Response модель ответа со счетчиками выполненных действий
// Повторный запуск на синхронизированных данных дает нулевые счетчики
type Response struct {
	From     time.Time // Фактическое начало периода
	To       time.Time // Фактический конец периода
	Pushed   int       // Создано событий для активных бронирований
	Restored int       // Восстановлено событий, пропавших из календаря
	Removed  int       // Удалено событий отмененных бронирований
	Failed   int       // Бронирований, которые не удалось синхронизировать
}
