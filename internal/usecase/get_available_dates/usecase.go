package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	serviceRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/service"
)

// UseCase use case для получения дат с доступными слотами
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

// Execute выполняет use case получения доступных дат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableDates: service=%d, addons=%v, from=%s, to=%s",
		req.ServiceID, req.AddonIDs, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableDates: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу и дополнения, считаем суммарную длительность
	service, addons, err := uc.resolveServices(ctx, req.ServiceID, req.AddonIDs)
	if err != nil {
		return nil, err
	}
	totalDuration := domain.TotalDuration(service, addons)

	// 3. Прошедшая часть периода не сканируется
	now := uc.timeProvider.Now().In(uc.loc)
	from := req.From
	if isDateInPast(from, now) {
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, from.Location())
	}
	if req.To.Before(from) {
		return &Response{ServiceID: req.ServiceID, Dates: []time.Time{}}, nil
	}

	// 4. Первичный отбор: дни с заданными рабочими часами
	candidates, err := uc.availability.GetDaysWithOpenHours(ctx, from, req.To)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get days with open hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get days with open hours: %v", ErrInternal, err)
	}

	// 5. Для каждого кандидата проверяем наличие хотя бы одного слота
	dates := make([]time.Time, 0, len(candidates))
	for _, day := range candidates {
		ok, err := uc.dayHasSlot(ctx, day, now, totalDuration)
		if err != nil {
			return nil, err
		}
		if ok {
			dates = append(dates, day)
		}
	}

	uc.logger.Info("GetAvailableDates: %d of %d candidate days have slots for service=%d",
		len(dates), len(candidates), req.ServiceID)

	return &Response{
		ServiceID: req.ServiceID,
		Dates:     dates,
	}, nil
}

// dayHasSlot проверяет, помещается ли услуга хотя бы в один слот дня
func (uc *UseCase) dayHasSlot(ctx context.Context, day, now time.Time, totalDuration int) (bool, error) {
	dayAvailability, err := uc.availability.GetDay(ctx, day)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get day availability for %s: %v",
			day.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: failed to get day availability: %v", ErrInternal, err)
	}

	freeOfBlocks, err := dayAvailability.FreeIntervals()
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to compute free intervals for %s: %v",
			day.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: failed to compute free intervals: %v", ErrInternal, err)
	}

	if len(freeOfBlocks) == 0 {
		return false, nil
	}

	bookings, err := uc.bookingRepo.GetByDate(ctx, day, true)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get bookings for %s: %v",
			day.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	footprints, err := bookingFootprints(bookings)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to compute booking footprints for %s: %v",
			day.Format(domain.DateFormat), err)
		return false, fmt.Errorf("%w: failed to compute booking footprints: %v", ErrInternal, err)
	}

	free := domain.SubtractRanges(freeOfBlocks, footprints)
	earliestStart := earliestStartFor(day, now, uc.minNoticeMinutes)

	return hasAvailableStart(free, totalDuration, uc.stepMinutes, earliestStart), nil
}

// resolveServices загружает основную услугу и дополнения с проверкой ролей
func (uc *UseCase) resolveServices(ctx context.Context, serviceID int64, addonIDs []int64) (*domain.Service, []*domain.Service, error) {
	service, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableDates: service id=%d not found", serviceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableDates: failed to get service id=%d: %v", serviceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if service.IsAddon {
		uc.logger.Warn("GetAvailableDates: service id=%d is an addon", serviceID)
		return nil, nil, ErrIsAddon
	}

	if len(addonIDs) == 0 {
		return service, nil, nil
	}

	addons, err := uc.serviceRepo.GetByIDs(ctx, addonIDs)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get addons %v: %v", addonIDs, err)
		return nil, nil, fmt.Errorf("%w: failed to get addons: %v", ErrInternal, err)
	}

	if len(addons) != len(addonIDs) {
		uc.logger.Warn("GetAvailableDates: some addons not found: requested=%v", addonIDs)
		return nil, nil, ErrAddonNotFound
	}

	for _, addon := range addons {
		if !addon.IsAddon {
			uc.logger.Warn("GetAvailableDates: service id=%d is not an addon", addon.ID)
			return nil, nil, ErrNotAnAddon
		}
	}

	return service, addons, nil
}
