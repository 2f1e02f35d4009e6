package sync_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	SetGoogleEventID(ctx context.Context, id int64, eventID *string) error
}

// CalendarClient интерфейс моста во внешний календарь
type CalendarClient interface {
	PushEvent(ctx context.Context, booking *domain.Booking) (string, error)
	RemoveEvent(ctx context.Context, eventID string) error
	ListEventIDs(ctx context.Context, from, to time.Time) (map[string]struct{}, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
