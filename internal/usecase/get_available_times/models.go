package get_available_times

import (
	"time"

	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// Request модель запроса на получение доступных времен начала
type Request struct {
	ServiceID int64     // ID основной услуги
	AddonIDs  []int64   // ID выбранных дополнений (опционально)
	Date      time.Time // Дата для расчета слотов (без времени)
}

// Response модель ответа со списком доступных времен начала
type Response struct {
	Date            time.Time          // Дата, на которую запрашивались слоты
	ServiceID       int64              // ID услуги
	DurationMinutes int                // Суммарная длительность: услуга + дополнения
	Times           []types.TimeString // Упорядоченные времена начала ("HH:MM")
}
