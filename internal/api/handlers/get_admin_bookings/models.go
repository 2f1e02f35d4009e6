package get_admin_bookings

import (
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/internal/service/bookings/models"
)

// AdminBookingResponse HTTP модель бронирования для административной панели
// В отличие от публичных ответов включает контакты клиента
type AdminBookingResponse struct {
	ID              int64   `json:"id"`
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	AddonIDs        []int64 `json:"addonIds,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ClientName      string  `json:"clientName"`
	ClientEmail     string  `json:"clientEmail"`
	ClientPhone     string  `json:"clientPhone"`
	Language        string  `json:"language,omitempty"`
	CustomRequest   *string `json:"customRequest,omitempty"`
	Price           float64 `json:"price"`
	CreatedAt       string  `json:"createdAt"`
}

// AdminBookingsResponse HTTP response model
type AdminBookingsResponse struct {
	Bookings []AdminBookingResponse `json:"bookings"`
	Total    int                    `json:"total"`
}

// FromServiceModels конвертирует DTO сервиса в HTTP response
func FromServiceModels(list []*models.Booking) *AdminBookingsResponse {
	bookings := make([]AdminBookingResponse, 0, len(list))
	for _, b := range list {
		bookings = append(bookings, AdminBookingResponse{
			ID:              b.ID,
			ServiceID:       b.ServiceID,
			ServiceName:     b.ServiceName,
			AddonIDs:        b.AddonIDs,
			Date:            b.Date.Format(domain.DateFormat),
			StartTime:       b.StartTime.String(),
			DurationMinutes: b.DurationMinutes,
			Status:          b.Status,
			ClientName:      b.ClientName,
			ClientEmail:     b.ClientEmail,
			ClientPhone:     b.ClientPhone,
			Language:        b.Language,
			CustomRequest:   b.CustomRequest,
			Price:           b.Price,
			CreatedAt:       b.CreatedAt.Format(time.RFC3339),
		})
	}

	return &AdminBookingsResponse{
		Bookings: bookings,
		Total:    len(bookings),
	}
}
