package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/booking"
	serviceRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/service"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	serviceRepo      ServiceRepository
	availability     AvailabilityService
	calendar         CalendarClient
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
	loc              *time.Location
	stepMinutes      int
	minNoticeMinutes int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	availability AvailabilityService,
	calendar CalendarClient,
	txManager TransactionManager,
	logger Logger,
	loc *time.Location,
	stepMinutes int,
	minNoticeMinutes int,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		serviceRepo:      serviceRepo,
		availability:     availability,
		calendar:         calendar,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		loc:              loc,
		stepMinutes:      stepMinutes,
		minNoticeMinutes: minNoticeMinutes,
	}
}

// Execute выполняет use case создания бронирования
// Проверка доступности и вставка выполняются в сериализуемой транзакции
// с блокировкой строк дня, поэтому два конкурентных запроса на один слот
// не могут пройти оба. Финальная страховка - частичный уникальный индекс
// по (дата, время начала) активных бронирований.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: service=%d, addons=%v, date=%s, time=%s",
		req.ServiceID, req.AddonIDs, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req, uc.stepMinutes); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе бизнеса
	now := uc.timeProvider.Now().In(uc.loc)

	// 3. Дата в прошлом и слишком близкое время сегодня отклоняются
	if err := uc.validateStartMoment(req, now); err != nil {
		uc.logger.Warn("CreateBooking: start moment rejected: %v", err)
		return nil, err
	}

	// 4. Получаем услугу и дополнения, считаем длительность и цену
	service, addons, err := uc.resolveServices(ctx, req.ServiceID, req.AddonIDs)
	if err != nil {
		return nil, err
	}
	totalDuration := domain.TotalDuration(service, addons)
	price := domain.TotalPrice(service, addons)

	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	requested := domain.Range{Start: startMinutes, End: startMinutes + totalDuration}

	booking := &domain.Booking{
		ServiceID:       service.ID,
		AddonIDs:        req.AddonIDs,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: totalDuration,
		Status:          domain.StatusActive,
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		Language:        req.Language,
		CustomRequest:   req.CustomRequest,
		CustomImage:     req.CustomImage,
		Token:           uuid.NewString(),
		Price:           price,
		ServiceName:     service.Name,
	}

	// 5. Проверка доступности и вставка в сериализуемой транзакции
	var result *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Перечитываем свободное время дня внутри транзакции
		free, err := uc.freeRanges(txCtx, req.Date)
		if err != nil {
			return err
		}

		// 5.2. Запрошенный интервал обязан целиком лежать в свободном диапазоне
		if !rangeFits(free, requested) {
			return ErrSlotTaken
		}

		// 5.3. Вставляем бронирование
		result, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: slot %s %s is not available", req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: created booking id=%d, date=%s, time=%s",
		result.ID, result.Date.Format(domain.DateFormat), result.StartTime)

	// 6. Синхронизация с внешним календарем после фиксации транзакции
	// Ошибка здесь не трогает созданное бронирование: событие допишет
	// пакетная сверка
	uc.pushCalendarEvent(ctx, result)

	return &Response{
		ID:              result.ID,
		Token:           result.Token,
		ServiceID:       result.ServiceID,
		ServiceName:     result.ServiceName,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Price:           result.Price,
	}, nil
}

// validateStartMoment проверяет дату и минимальный запас до начала слота
func (uc *UseCase) validateStartMoment(req *Request, now time.Time) error {
	if isDateInPast(req.Date, now) {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidDate, req.Date.Format(domain.DateFormat))
	}

	if !isSameDay(req.Date, now) {
		return nil
	}

	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	if startMinutes < nowMinutes+uc.minNoticeMinutes {
		return fmt.Errorf("%w: slot %s starts less than %d minutes from now",
			ErrInvalidDate, req.StartTime, uc.minNoticeMinutes)
	}

	return nil
}

// freeRanges вычисляет свободные диапазоны дня внутри транзакции
// Чтение бронирований блокирует их строки через FOR UPDATE
func (uc *UseCase) freeRanges(ctx context.Context, date time.Time) ([]domain.Range, error) {
	day, err := uc.availability.GetDay(ctx, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get day availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get day availability: %v", ErrInternal, err)
	}

	freeOfBlocks, err := day.FreeIntervals()
	if err != nil {
		uc.logger.Error("CreateBooking: failed to compute free intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to compute free intervals: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByDate(ctx, date, true)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	footprints := make([]domain.Range, 0, len(bookings))
	for _, b := range bookings {
		r, err := b.Footprint()
		if err != nil {
			uc.logger.Error("CreateBooking: failed to compute footprint for booking id=%d: %v", b.ID, err)
			return nil, fmt.Errorf("%w: failed to compute booking footprint: %v", ErrInternal, err)
		}
		footprints = append(footprints, r)
	}

	return domain.SubtractRanges(freeOfBlocks, footprints), nil
}

// pushCalendarEvent создает событие во внешнем календаре и сохраняет его ID
func (uc *UseCase) pushCalendarEvent(ctx context.Context, booking *domain.Booking) {
	eventID, err := uc.calendar.PushEvent(ctx, booking)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to push calendar event for booking id=%d: %v", booking.ID, err)
		return
	}

	if err := uc.bookingRepo.SetGoogleEventID(ctx, booking.ID, &eventID); err != nil {
		uc.logger.Warn("CreateBooking: failed to store calendar event id for booking id=%d: %v", booking.ID, err)
	}
}

// resolveServices загружает основную услугу и дополнения с проверкой ролей
func (uc *UseCase) resolveServices(ctx context.Context, serviceID int64, addonIDs []int64) (*domain.Service, []*domain.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", serviceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", serviceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.IsAddon {
		uc.logger.Warn("CreateBooking: service id=%d is an addon", serviceID)
		return nil, nil, ErrIsAddon
	}

	if len(addonIDs) == 0 {
		return service, nil, nil
	}

	addons, err := uc.serviceRepo.GetByIDs(ctx, addonIDs)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get addons %v: %v", addonIDs, err)
		return nil, nil, fmt.Errorf("%w: failed to get addons: %v", ErrInternal, err)
	}

	if len(addons) != len(addonIDs) {
		uc.logger.Warn("CreateBooking: some addons not found: requested=%v", addonIDs)
		return nil, nil, ErrAddonNotFound
	}

	for _, addon := range addons {
		if !addon.IsAddon {
			uc.logger.Warn("CreateBooking: service id=%d is not an addon", addon.ID)
			return nil, nil, ErrNotAnAddon
		}
	}

	return service, addons, nil
}

// rangeFits проверяет, что запрошенный интервал целиком лежит
// в одном из свободных диапазонов
func rangeFits(free []domain.Range, requested domain.Range) bool {
	for _, r := range free {
		if requested.Start >= r.Start && requested.End <= r.End {
			return true
		}
	}
	return false
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
