package bookings

import (
	"context"

	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByToken(ctx context.Context, token string) (*domain.Booking, error)
	GetWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
	SetGoogleEventID(ctx context.Context, id int64, eventID *string) error
}

// CalendarClient интерфейс моста во внешний календарь
// Вызовы best-effort: ошибки логируются и не влияют на результат операции
type CalendarClient interface {
	RemoveEvent(ctx context.Context, eventID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
