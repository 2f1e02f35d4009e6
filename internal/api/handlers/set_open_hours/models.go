package set_open_hours

import (
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// SetOpenHoursRequest HTTP request model
type SetOpenHoursRequest struct {
	Date      string `json:"date"`      // "2026-09-01"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

// OpenHoursResponse HTTP response model
type OpenHoursResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Parse разбирает дату и границы окна из строковых полей
func (r *SetOpenHoursRequest) Parse() (time.Time, types.TimeString, types.TimeString, error) {
	day, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return time.Time{}, "", "", err
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return time.Time{}, "", "", err
	}

	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return time.Time{}, "", "", err
	}

	return day, start, end, nil
}

// FromDomain конвертирует доменную запись в HTTP response
func FromDomain(entry *domain.OpenHoursEntry) *OpenHoursResponse {
	return &OpenHoursResponse{
		ID:        entry.ID,
		Date:      entry.Day.Format(domain.DateFormat),
		StartTime: entry.StartTime.String(),
		EndTime:   entry.EndTime.String(),
	}
}
