package manage_booking

import (
	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/internal/service/bookings/models"
)

// ManagedBookingResponse HTTP модель бронирования для страницы управления
// Токен в ответ не включается: он уже есть у клиента в ссылке
type ManagedBookingResponse struct {
	ServiceName     string  `json:"serviceName"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ClientName      string  `json:"clientName"`
	Price           float64 `json:"price"`
}

// FromServiceModel конвертирует DTO сервиса в HTTP response
func FromServiceModel(b *models.Booking) *ManagedBookingResponse {
	return &ManagedBookingResponse{
		ServiceName:     b.ServiceName,
		Date:            b.Date.Format(domain.DateFormat),
		StartTime:       b.StartTime.String(),
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
		ClientName:      b.ClientName,
		Price:           b.Price,
	}
}
