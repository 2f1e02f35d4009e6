package manage_booking

import (
	"context"

	"github.com/m04kA/SLN-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetByToken(ctx context.Context, token string) (*models.Booking, error)
	CancelByToken(ctx context.Context, token string) (*models.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
