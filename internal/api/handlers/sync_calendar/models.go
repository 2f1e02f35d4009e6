package sync_calendar

import (
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	syncCalendar "github.com/m04kA/SLN-BookingService/internal/usecase/sync_calendar"
)

// SyncCalendarRequest HTTP request model
// Обе даты опциональны: по умолчанию сверяется ближайший месяц
type SyncCalendarRequest struct {
	From string `json:"from,omitempty"` // "2026-09-01"
	To   string `json:"to,omitempty"`   // "2026-09-30"
}

// SyncCalendarResponse HTTP response model
type SyncCalendarResponse struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Pushed   int    `json:"pushed"`
	Restored int    `json:"restored"`
	Removed  int    `json:"removed"`
	Failed   int    `json:"failed"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SyncCalendarRequest) ToUseCaseRequest() (*syncCalendar.Request, error) {
	req := &syncCalendar.Request{}

	if r.From != "" {
		from, err := time.Parse(domain.DateFormat, r.From)
		if err != nil {
			return nil, err
		}
		req.From = from
	}

	if r.To != "" {
		to, err := time.Parse(domain.DateFormat, r.To)
		if err != nil {
			return nil, err
		}
		req.To = to
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *syncCalendar.Response) *SyncCalendarResponse {
	return &SyncCalendarResponse{
		From:     resp.From.Format(domain.DateFormat),
		To:       resp.To.Format(domain.DateFormat),
		Pushed:   resp.Pushed,
		Restored: resp.Restored,
		Removed:  resp.Removed,
		Failed:   resp.Failed,
	}
}
