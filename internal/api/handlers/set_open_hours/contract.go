package set_open_hours

import (
	"context"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

type AvailabilityService interface {
	SetOpenHours(ctx context.Context, day time.Time, start, end types.TimeString) (*domain.OpenHoursEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
