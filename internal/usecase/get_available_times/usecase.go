package get_available_times

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	serviceRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/service"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// UseCase use case для получения доступных времен начала бронирования
type UseCase struct {
	serviceRepo      ServiceRepository
	availability     AvailabilityService
	bookingRepo      BookingRepository
	timeProvider     TimeProvider
	logger           Logger
	loc              *time.Location
	stepMinutes      int
	minNoticeMinutes int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	availability AvailabilityService,
	bookingRepo BookingRepository,
	logger Logger,
	loc *time.Location,
	stepMinutes int,
	minNoticeMinutes int,
) *UseCase {
	return &UseCase{
		serviceRepo:      serviceRepo,
		availability:     availability,
		bookingRepo:      bookingRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		loc:              loc,
		stepMinutes:      stepMinutes,
		minNoticeMinutes: minNoticeMinutes,
	}
}

// Execute выполняет use case получения доступных времен
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableTimes: service=%d, addons=%v, date=%s",
		req.ServiceID, req.AddonIDs, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу и дополнения, считаем суммарную длительность
	service, addons, err := uc.resolveServices(ctx, req.ServiceID, req.AddonIDs)
	if err != nil {
		return nil, err
	}
	totalDuration := domain.TotalDuration(service, addons)

	// 3. Дата в прошлом - корректный запрос с пустым результатом
	now := uc.timeProvider.Now().In(uc.loc)
	if isDateInPast(req.Date, now) {
		return uc.emptyResponse(req, totalDuration), nil
	}

	// 4. Свободное время дня: рабочие часы минус блокировки
	day, err := uc.availability.GetDay(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get day availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get day availability: %v", ErrInternal, err)
	}

	freeOfBlocks, err := day.FreeIntervals()
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to compute free intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to compute free intervals: %v", ErrInternal, err)
	}

	// День без рабочих часов - пустой результат, не ошибка
	if len(freeOfBlocks) == 0 {
		uc.logger.Info("GetAvailableTimes: no open hours on %s", req.Date.Format(domain.DateFormat))
		return uc.emptyResponse(req, totalDuration), nil
	}

	// 5. Вычитаем занятые диапазоны активных бронирований
	bookings, err := uc.bookingRepo.GetByDate(ctx, req.Date, true)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	footprints, err := bookingFootprints(bookings)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to compute booking footprints: %v", err)
		return nil, fmt.Errorf("%w: failed to compute booking footprints: %v", ErrInternal, err)
	}

	free := domain.SubtractRanges(freeOfBlocks, footprints)

	// 6. Генерируем времена начала по сетке с отсечкой на сегодня
	earliestStart := earliestStartFor(req.Date, now, uc.minNoticeMinutes)
	times, err := generateStartTimes(free, totalDuration, uc.stepMinutes, earliestStart)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to generate start times: %v", err)
		return nil, fmt.Errorf("%w: failed to generate start times: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableTimes: generated %d times for service=%d, date=%s",
		len(times), req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: totalDuration,
		Times:           times,
	}, nil
}

// resolveServices загружает основную услугу и дополнения с проверкой ролей
func (uc *UseCase) resolveServices(ctx context.Context, serviceID int64, addonIDs []int64) (*domain.Service, []*domain.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableTimes: service id=%d not found", serviceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableTimes: failed to get service id=%d: %v", serviceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.IsAddon {
		uc.logger.Warn("GetAvailableTimes: service id=%d is an addon", serviceID)
		return nil, nil, ErrIsAddon
	}

	if len(addonIDs) == 0 {
		return service, nil, nil
	}

	addons, err := uc.serviceRepo.GetByIDs(ctx, addonIDs)
	if err != nil {
		uc.logger.Error("GetAvailableTimes: failed to get addons %v: %v", addonIDs, err)
		return nil, nil, fmt.Errorf("%w: failed to get addons: %v", ErrInternal, err)
	}

	if len(addons) != len(addonIDs) {
		uc.logger.Warn("GetAvailableTimes: some addons not found: requested=%v", addonIDs)
		return nil, nil, ErrAddonNotFound
	}

	for _, addon := range addons {
		if !addon.IsAddon {
			uc.logger.Warn("GetAvailableTimes: service id=%d is not an addon", addon.ID)
			return nil, nil, ErrNotAnAddon
		}
	}

	return service, addons, nil
}

func (uc *UseCase) emptyResponse(req *Request, totalDuration int) *Response {
	return &Response{
		Date:            req.Date,
		ServiceID:       req.ServiceID,
		DurationMinutes: totalDuration,
		Times:           []types.TimeString{},
	}
}
