package create_booking

import (
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	createBooking "github.com/m04kA/SLN-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID     int64   `json:"serviceId"`
	AddonIDs      []int64 `json:"addonIds,omitempty"`
	Date          string  `json:"date"`      // "2026-09-01"
	StartTime     string  `json:"startTime"` // "10:00"
	ClientName    string  `json:"clientName"`
	ClientEmail   string  `json:"clientEmail"`
	ClientPhone   string  `json:"clientPhone"`
	Language      string  `json:"language,omitempty"`
	CustomRequest *string `json:"customRequest,omitempty"`
	CustomImage   *string `json:"customImage,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	Token           string  `json:"token"`
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		ServiceID:     r.ServiceID,
		AddonIDs:      r.AddonIDs,
		Date:          date,
		StartTime:     startTime,
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		ClientPhone:   r.ClientPhone,
		Language:      r.Language,
		CustomRequest: r.CustomRequest,
		CustomImage:   r.CustomImage,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Token:           resp.Token,
		ServiceID:       resp.ServiceID,
		ServiceName:     resp.ServiceName,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Price:           resp.Price,
	}
}
