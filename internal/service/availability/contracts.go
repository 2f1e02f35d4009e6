package availability

import (
	"context"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// AvailabilityRepository интерфейс репозитория расписания
type AvailabilityRepository interface {
	GetOpenHours(ctx context.Context, day time.Time) ([]domain.OpenHoursEntry, error)
	GetBlocked(ctx context.Context, day time.Time) ([]domain.BlockedTimeEntry, error)
	GetDaysWithOpenHours(ctx context.Context, from, to time.Time) ([]time.Time, error)
	ReplaceOpenHours(ctx context.Context, day time.Time, start, end types.TimeString) (*domain.OpenHoursEntry, error)
	AddBlock(ctx context.Context, day time.Time, start, end types.TimeString, reason *string) (*domain.BlockedTimeEntry, error)
	RemoveBlock(ctx context.Context, id int64) error
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
