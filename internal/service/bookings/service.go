package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	storage "github.com/m04kA/SLN-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SLN-BookingService/internal/service/bookings/models"
)

// Service сервис управления существующими бронированиями
type Service struct {
	repo     BookingRepository
	calendar CalendarClient
	logger   Logger
}

func NewService(repo BookingRepository, calendar CalendarClient, logger Logger) *Service {
	return &Service{
		repo:     repo,
		calendar: calendar,
		logger:   logger,
	}
}

// GetByToken возвращает бронирование по токену управления
func (s *Service) GetByToken(ctx context.Context, token string) (*models.Booking, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty manage token", ErrInvalidInput)
	}

	booking, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("bookings.GetByToken: failed to get booking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return models.FromDomain(booking), nil
}

// CancelByToken отменяет бронирование по токену управления
// Слот освобождается сразу: отмененные бронирования не учитываются при генерации слотов
func (s *Service) CancelByToken(ctx context.Context, token string) (*models.Booking, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty manage token", ErrInvalidInput)
	}

	booking, err := s.repo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("bookings.CancelByToken: failed to get booking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		return nil, ErrCannotCancel
	}

	if err := s.repo.Cancel(ctx, booking.ID); err != nil {
		if errors.Is(err, storage.ErrCannotCancel) {
			return nil, ErrCannotCancel
		}
		s.logger.Error("bookings.CancelByToken: failed to cancel booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("bookings.CancelByToken: cancelled booking id=%d date=%s time=%s",
		booking.ID, booking.Date.Format(domain.DateFormat), booking.StartTime)

	s.removeCalendarEvent(ctx, booking)

	booking.Status = domain.StatusCancelled
	return models.FromDomain(booking), nil
}

// List возвращает бронирования по фильтру для административной панели
func (s *Service) List(ctx context.Context, filter models.ListFilter) ([]*models.Booking, error) {
	list, err := s.repo.GetWithFilter(ctx, domain.BookingsFilter{
		FromDate:         filter.FromDate,
		ToDate:           filter.ToDate,
		IncludeCancelled: filter.IncludeCancelled,
	})
	if err != nil {
		s.logger.Error("bookings.List: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return models.FromDomainList(list), nil
}

// removeCalendarEvent убирает событие из внешнего календаря после отмены
// Ошибка синхронизации не отменяет результат: событие подберет пакетная сверка
func (s *Service) removeCalendarEvent(ctx context.Context, booking *domain.Booking) {
	if booking.GoogleEventID == nil || *booking.GoogleEventID == "" {
		return
	}

	if err := s.calendar.RemoveEvent(ctx, *booking.GoogleEventID); err != nil {
		s.logger.Warn("bookings: failed to remove calendar event id=%s for booking id=%d: %v",
			*booking.GoogleEventID, booking.ID, err)
		return
	}

	if err := s.repo.SetGoogleEventID(ctx, booking.ID, nil); err != nil {
		s.logger.Warn("bookings: failed to clear calendar event id for booking id=%d: %v", booking.ID, err)
	}
}
