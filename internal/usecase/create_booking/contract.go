package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByDate(ctx context.Context, date time.Time, activeOnly bool) ([]*domain.Booking, error)
	SetGoogleEventID(ctx context.Context, id int64, eventID *string) error
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error)
}

// AvailabilityService интерфейс сервиса расписания
type AvailabilityService interface {
	GetDay(ctx context.Context, day time.Time) (*domain.DayAvailability, error)
}

// CalendarClient интерфейс моста во внешний календарь
// Вызовы best-effort: ошибка синхронизации не откатывает бронирование
type CalendarClient interface {
	PushEvent(ctx context.Context, booking *domain.Booking) (string, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
