package create_booking

import (
	"time"

	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ServiceID int64            // ID основной услуги
	AddonIDs  []int64          // ID выбранных дополнений (опционально)
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала ("HH:MM", на сетке слотов)

	ClientName  string // Имя клиента
	ClientEmail string // Email для подтверждения
	ClientPhone string // Телефон
	Language    string // Язык клиента ("en", "pl", "ua", "ru")

	// Опциональное свободное пожелание клиента с вложением
	CustomRequest *string
	CustomImage   *string
}

// Response модель ответа на создание бронирования
type Response struct {
	ID              int64            // ID бронирования
	Token           string           // Токен самостоятельного управления
	ServiceID       int64            // ID услуги
	ServiceName     string           // Название услуги на момент создания
	Date            time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	DurationMinutes int              // Суммарная длительность: услуга + дополнения
	Price           float64          // Снимок цены на момент создания
}
