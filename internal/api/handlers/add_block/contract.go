package add_block

import (
	"context"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

type AvailabilityService interface {
	AddBlock(ctx context.Context, day time.Time, start, end types.TimeString, reason *string) (*domain.BlockedTimeEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
