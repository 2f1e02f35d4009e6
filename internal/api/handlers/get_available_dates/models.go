package get_available_dates

import (
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	getAvailableDates "github.com/m04kA/SLN-BookingService/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	ServiceID int64    `json:"serviceId"`
	Dates     []string `json:"dates"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(serviceID int64, addonIDs []int64, fromStr, toStr string) (*getAvailableDates.Request, error) {
	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		return nil, err
	}

	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableDates.Request{
		ServiceID: serviceID,
		AddonIDs:  addonIDs,
		From:      from,
		To:        to,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	dates := make([]string, 0, len(resp.Dates))
	for _, d := range resp.Dates {
		dates = append(dates, d.Format(domain.DateFormat))
	}

	return &AvailableDatesResponse{
		ServiceID: resp.ServiceID,
		Dates:     dates,
	}
}
