package list_services

import (
	"context"

	"github.com/m04kA/SLN-BookingService/internal/domain"
)

type CatalogService interface {
	List(ctx context.Context) (services, addons []*domain.Service, err error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
