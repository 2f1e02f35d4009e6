package get_available_dates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	serviceRepo "github.com/m04kA/SLN-BookingService/internal/infra/storage/service"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeServiceRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Service, error) {
	result := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		if s, ok := f.services[id]; ok {
			result = append(result, s)
		}
	}
	return result, nil
}

type fakeAvailability struct {
	days map[string]*domain.DayAvailability
}

func (f *fakeAvailability) GetDay(_ context.Context, day time.Time) (*domain.DayAvailability, error) {
	if d, ok := f.days[day.Format(domain.DateFormat)]; ok {
		return d, nil
	}
	return &domain.DayAvailability{Day: day}, nil
}

func (f *fakeAvailability) GetDaysWithOpenHours(_ context.Context, from, to time.Time) ([]time.Time, error) {
	days := make([]time.Time, 0)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if _, ok := f.days[d.Format(domain.DateFormat)]; ok {
			days = append(days, d)
		}
	}
	return days, nil
}

type fakeBookingRepo struct {
	bookings map[string][]*domain.Booking
}

func (f *fakeBookingRepo) GetByDate(_ context.Context, date time.Time, activeOnly bool) ([]*domain.Booking, error) {
	list := f.bookings[date.Format(domain.DateFormat)]
	if !activeOnly {
		return list, nil
	}
	active := make([]*domain.Booking, 0, len(list))
	for _, b := range list {
		if b.IsActive() {
			active = append(active, b)
		}
	}
	return active, nil
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func openDay(d int, start, end types.TimeString) *domain.DayAvailability {
	return &domain.DayAvailability{
		Day:  day(d),
		Open: []domain.OpenHoursEntry{{StartTime: start, EndTime: end}},
	}
}

func newTestUseCase(services *fakeServiceRepo, availability *fakeAvailability, bookings *fakeBookingRepo, now time.Time) *UseCase {
	uc := NewUseCase(services, availability, bookings, &noopLogger{}, time.UTC, 30, 30)
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestUseCase_Execute(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, DurationMinutes: 60, IsAddon: false},
	}}
	availability := &fakeAvailability{days: map[string]*domain.DayAvailability{
		"2026-09-10": openDay(10, "09:00", "17:00"),
		"2026-09-11": openDay(11, "09:00", "10:00"), // час работы, полностью занят броней
		"2026-09-13": openDay(13, "09:00", "09:30"), // окно короче услуги
	}}
	bookings := &fakeBookingRepo{bookings: map[string][]*domain.Booking{
		"2026-09-11": {
			{Status: domain.StatusActive, StartTime: types.TimeString("09:00"), DurationMinutes: 60},
		},
	}}

	uc := newTestUseCase(services, availability, bookings, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, From: day(9), To: day(14)})
	require.NoError(t, err)

	// Дни без рабочих часов, занятые и слишком короткие отпадают
	assert.Equal(t, []time.Time{day(10)}, resp.Dates)
}

func TestUseCase_Execute_PastPortionClamped(t *testing.T) {
	// Сегодня 10 сентября: дни до него не сканируются
	now := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, DurationMinutes: 30, IsAddon: false},
	}}
	availability := &fakeAvailability{days: map[string]*domain.DayAvailability{
		"2026-09-08": openDay(8, "09:00", "17:00"),
		"2026-09-10": openDay(10, "09:00", "17:00"),
		"2026-09-12": openDay(12, "09:00", "17:00"),
	}}

	uc := newTestUseCase(services, availability, &fakeBookingRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, From: day(1), To: day(14)})
	require.NoError(t, err)

	assert.Equal(t, []time.Time{day(10), day(12)}, resp.Dates)
}

func TestUseCase_Execute_WholeRangeInPast(t *testing.T) {
	now := time.Date(2026, 9, 20, 8, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, DurationMinutes: 30, IsAddon: false},
	}}
	availability := &fakeAvailability{days: map[string]*domain.DayAvailability{
		"2026-09-10": openDay(10, "09:00", "17:00"),
	}}

	uc := newTestUseCase(services, availability, &fakeBookingRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, From: day(1), To: day(14)})
	require.NoError(t, err)
	assert.Empty(t, resp.Dates)
}

func TestUseCase_Execute_SameDayNotice(t *testing.T) {
	// Сегодня рабочий день до 17:00, но сейчас 16:50: слотов уже нет
	now := time.Date(2026, 9, 10, 16, 50, 0, 0, time.UTC)

	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, DurationMinutes: 30, IsAddon: false},
	}}
	availability := &fakeAvailability{days: map[string]*domain.DayAvailability{
		"2026-09-10": openDay(10, "09:00", "17:00"),
	}}

	uc := newTestUseCase(services, availability, &fakeBookingRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, From: day(10), To: day(10)})
	require.NoError(t, err)
	assert.Empty(t, resp.Dates)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, DurationMinutes: 60, IsAddon: false},
		2: {ID: 2, DurationMinutes: 30, IsAddon: true},
	}}
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	uc := newTestUseCase(services, &fakeAvailability{days: map[string]*domain.DayAvailability{}}, &fakeBookingRepo{}, now)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 99, From: day(1), To: day(14)})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 2, From: day(1), To: day(14)})
	assert.ErrorIs(t, err, ErrIsAddon)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1, From: day(14), To: day(1)})
	assert.ErrorIs(t, err, ErrInvalidRange)

	// Период длиннее допустимого окна
	_, err = uc.Execute(context.Background(), &Request{
		ServiceID: 1,
		From:      day(1),
		To:        time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)
}
