package get_available_times

import (
	"context"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Service, error)
}

// AvailabilityService интерфейс сервиса расписания
type AvailabilityService interface {
	// GetDay возвращает рабочие часы и блокировки на день
	GetDay(ctx context.Context, day time.Time) (*domain.DayAvailability, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByDate получает бронирования на конкретную дату
	GetByDate(ctx context.Context, date time.Time, activeOnly bool) ([]*domain.Booking, error)
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
