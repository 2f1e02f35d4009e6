package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	storage "github.com/m04kA/SLN-BookingService/internal/infra/storage/availability"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// Service сервис управления расписанием: рабочие часы и блокировки
type Service struct {
	repo      AvailabilityRepository
	txManager TransactionManager
	logger    Logger
}

func NewService(repo AvailabilityRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// GetDay возвращает рабочие часы и блокировки на день
func (s *Service) GetDay(ctx context.Context, day time.Time) (*domain.DayAvailability, error) {
	open, err := s.repo.GetOpenHours(ctx, day)
	if err != nil {
		s.logger.Error("availability.GetDay: failed to get open hours: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	blocked, err := s.repo.GetBlocked(ctx, day)
	if err != nil {
		s.logger.Error("availability.GetDay: failed to get blocked time: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return &domain.DayAvailability{
		Day:     day,
		Open:    open,
		Blocked: blocked,
	}, nil
}

// GetDaysWithOpenHours возвращает дни периода, на которые заданы рабочие часы
func (s *Service) GetDaysWithOpenHours(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	days, err := s.repo.GetDaysWithOpenHours(ctx, from, to)
	if err != nil {
		s.logger.Error("availability.GetDaysWithOpenHours: failed to get days: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	return days, nil
}

// SetOpenHours задает рабочие часы на день, затирая предыдущие
// Замена выполняется в транзакции, чтобы день не остался без расписания при сбое
func (s *Service) SetOpenHours(ctx context.Context, day time.Time, start, end types.TimeString) (*domain.OpenHoursEntry, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	var entry *domain.OpenHoursEntry
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var txErr error
		entry, txErr = s.repo.ReplaceOpenHours(ctx, day, start, end)
		return txErr
	})
	if err != nil {
		s.logger.Error("availability.SetOpenHours: failed to replace open hours: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("availability.SetOpenHours: day=%s hours=%s-%s", day.Format(domain.DateFormat), start, end)
	return entry, nil
}

// AddBlock добавляет блокировку времени на день
func (s *Service) AddBlock(ctx context.Context, day time.Time, start, end types.TimeString, reason *string) (*domain.BlockedTimeEntry, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	entry, err := s.repo.AddBlock(ctx, day, start, end, reason)
	if err != nil {
		s.logger.Error("availability.AddBlock: failed to add block: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("availability.AddBlock: day=%s block=%s-%s id=%d", day.Format(domain.DateFormat), start, end, entry.ID)
	return entry, nil
}

// RemoveBlock снимает блокировку по ID
func (s *Service) RemoveBlock(ctx context.Context, id int64) error {
	if err := s.repo.RemoveBlock(ctx, id); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("availability.RemoveBlock: failed to remove block id=%d: %v", id, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("availability.RemoveBlock: removed block id=%d", id)
	return nil
}

// validateRange проверяет корректность границ интервала
// Пустые и вырожденные интервалы отклоняются до обращения к базе
func validateRange(start, end types.TimeString) error {
	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidRange, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidRange, err)
	}
	if !start.IsBefore(end) {
		return fmt.Errorf("%w: start %s must be before end %s", ErrInvalidRange, start, end)
	}
	return nil
}
