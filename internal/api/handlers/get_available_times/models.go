package get_available_times

import (
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	getAvailableTimes "github.com/m04kA/SLN-BookingService/internal/usecase/get_available_times"
)

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	Date            string   `json:"date"`
	ServiceID       int64    `json:"serviceId"`
	DurationMinutes int      `json:"durationMinutes"`
	Times           []string `json:"times"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(serviceID int64, addonIDs []int64, dateStr string) (*getAvailableTimes.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableTimes.Request{
		ServiceID: serviceID,
		AddonIDs:  addonIDs,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableTimes.Response) *AvailableTimesResponse {
	times := make([]string, 0, len(resp.Times))
	for _, t := range resp.Times {
		times = append(times, t.String())
	}

	return &AvailableTimesResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Times:           times,
	}
}
