package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/pkg/ptr"
)

// Service каталог услуг и дополнений
type Service struct {
	repo   ServiceRepository
	logger Logger
}

func NewService(repo ServiceRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List возвращает основные услуги и дополнения одним ответом
func (s *Service) List(ctx context.Context) (services, addons []*domain.Service, err error) {
	services, err = s.repo.List(ctx, ptr.Ptr(false))
	if err != nil {
		s.logger.Error("catalog.List: failed to list services: %v", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	addons, err = s.repo.List(ctx, ptr.Ptr(true))
	if err != nil {
		s.logger.Error("catalog.List: failed to list addons: %v", err)
		return nil, nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return services, addons, nil
}
