package add_block

import (
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// AddBlockRequest HTTP request model
type AddBlockRequest struct {
	Date      string  `json:"date"`      // "2026-09-01"
	StartTime string  `json:"startTime"` // "12:00"
	EndTime   string  `json:"endTime"`   // "13:00"
	Reason    *string `json:"reason,omitempty"`
}

// BlockResponse HTTP response model
type BlockResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	EndTime   string  `json:"endTime"`
	Reason    *string `json:"reason,omitempty"`
}

// Parse разбирает дату и границы блокировки из строковых полей
func (r *AddBlockRequest) Parse() (time.Time, types.TimeString, types.TimeString, error) {
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
func FromDomain(entry *domain.BlockedTimeEntry) *BlockResponse {
	return &BlockResponse{
		ID:        entry.ID,
		Date:      entry.Day.Format(domain.DateFormat),
		StartTime: entry.StartTime.String(),
		EndTime:   entry.EndTime.String(),
		Reason:    entry.Reason,
	}
}
