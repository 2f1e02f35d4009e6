package sync_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/internal/integrations/googlecalendar"
)

// UseCase use case пакетной сверки бронирований с внешним календарем
// Сверка идемпотентна: повторный запуск на уже синхронизированных данных
// ничего не меняет
type UseCase struct {
	bookingRepo  BookingRepository
	calendar     CalendarClient
	timeProvider TimeProvider
	logger       Logger
	loc          *time.Location
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, calendar CalendarClient, logger Logger, loc *time.Location) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		calendar:     calendar,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		loc:          loc,
	}
}

// Execute выполняет use case сверки календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	from, to, err := uc.resolveWindow(req)
	if err != nil {
		uc.logger.Warn("SyncCalendar: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("SyncCalendar: reconciling %s..%s", from.Format(domain.DateFormat), to.Format(domain.DateFormat))

	// 1. Существующие события сервиса в календаре за период
	existing, err := uc.calendar.ListEventIDs(ctx, from, to)
	if err != nil {
		if errors.Is(err, googlecalendar.ErrSyncDisabled) {
			return nil, ErrSyncDisabled
		}
		uc.logger.Error("SyncCalendar: failed to list calendar events: %v", err)
		return nil, fmt.Errorf("%w: failed to list calendar events: %v", ErrSyncFailed, err)
	}

	// 2. Все бронирования периода, включая отмененные
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		FromDate:         &from,
		ToDate:           &to,
		IncludeCancelled: true,
	})
	if err != nil {
		uc.logger.Error("SyncCalendar: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	resp := &Response{From: from, To: to}

	// 3. Сверяем каждое бронирование с состоянием календаря
	for _, booking := range bookings {
		switch {
		case booking.IsActive() && booking.GoogleEventID == nil:
			// Активное без события - создаем
			uc.push(ctx, booking, resp, &resp.Pushed)

		case booking.IsActive():
			// Активное со ссылкой на событие - проверяем, что оно не пропало
			if _, ok := existing[*booking.GoogleEventID]; !ok {
				uc.push(ctx, booking, resp, &resp.Restored)
			}

		case booking.GoogleEventID != nil:
			// Отмененное с оставшимся событием - убираем
			uc.remove(ctx, booking, resp)
		}
	}

	uc.logger.Info("SyncCalendar: done, pushed=%d restored=%d removed=%d failed=%d",
		resp.Pushed, resp.Restored, resp.Removed, resp.Failed)

	return resp, nil
}

// resolveWindow вычисляет фактический период сверки
func (uc *UseCase) resolveWindow(req *Request) (time.Time, time.Time, error) {
	now := uc.timeProvider.Now().In(uc.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	from := req.From
	to := req.To
	if from.IsZero() {
		from = today
	}
	if to.IsZero() {
		to = from.AddDate(0, 0, defaultWindowDays)
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to date is before from date", ErrInvalidInput)
	}

	return from, to, nil
}

// push создает событие для бронирования и сохраняет его ID
func (uc *UseCase) push(ctx context.Context, booking *domain.Booking, resp *Response, counter *int) {
	eventID, err := uc.calendar.PushEvent(ctx, booking)
	if err != nil {
		uc.logger.Warn("SyncCalendar: failed to push event for booking id=%d: %v", booking.ID, err)
		resp.Failed++
		return
	}

	if err := uc.bookingRepo.SetGoogleEventID(ctx, booking.ID, &eventID); err != nil {
		uc.logger.Warn("SyncCalendar: failed to store event id for booking id=%d: %v", booking.ID, err)
		resp.Failed++
		return
	}

	*counter++
}

// remove удаляет событие отмененного бронирования и очищает ссылку
func (uc *UseCase) remove(ctx context.Context, booking *domain.Booking, resp *Response) {
	if err := uc.calendar.RemoveEvent(ctx, *booking.GoogleEventID); err != nil {
		uc.logger.Warn("SyncCalendar: failed to remove event for booking id=%d: %v", booking.ID, err)
		resp.Failed++
		return
	}

	if err := uc.bookingRepo.SetGoogleEventID(ctx, booking.ID, nil); err != nil {
		uc.logger.Warn("SyncCalendar: failed to clear event id for booking id=%d: %v", booking.ID, err)
		resp.Failed++
		return
	}

	resp.Removed++
}
