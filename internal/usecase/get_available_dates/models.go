package get_available_dates

import "time"

// Request модель запроса на получение доступных дат периода
type Request struct {
	ServiceID int64     // ID основной услуги
	AddonIDs  []int64   // ID выбранных дополнений (опционально)
	From      time.Time // Начало периода (включительно)
	To        time.Time // Конец периода (включительно)
}

// Response модель ответа со списком дат, на которых есть хотя бы один слот
type Response struct {
	ServiceID int64       // ID услуги
	Dates     []time.Time // Упорядоченные даты с доступными слотами
}
