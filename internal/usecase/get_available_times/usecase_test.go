package get_available_times

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

func newTestUseCase(services *fakeServiceRepo, availability *fakeAvailability, bookings *fakeBookingRepo, now time.Time) *UseCase {
	uc := NewUseCase(services, availability, bookings, &noopLogger{}, time.UTC, 30, 30)
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

func TestUseCase_Execute(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, Name: "Manicure", DurationMinutes: 60, IsAddon: false},
		2: {ID: 2, Name: "Design", DurationMinutes: 30, IsAddon: true},
	}}
	availability := &fakeAvailability{days: map[string]*domain.DayAvailability{
		"2026-09-10": {
			Day:  date,
			Open: []domain.OpenHoursEntry{{StartTime: "09:00", EndTime: "12:00"}},
		},
	}}
	bookings := &fakeBookingRepo{bookings: map[string][]*domain.Booking{
		"2026-09-10": {
			{Status: domain.StatusActive, StartTime: types.TimeString("09:30"), DurationMinutes: 90},
		},
	}}

	uc := newTestUseCase(services, availability, bookings, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date})
	require.NoError(t, err)

	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []types.TimeString{"11:00"}, resp.Times)
}

func TestUseCase_Execute_WithAddon(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, DurationMinutes: 60, IsAddon: false},
		2: {ID: 2, DurationMinutes: 30, IsAddon: true},
	}}
	availability := &fakeAvailability{days: map[string]*domain.DayAvailability{
		"2026-09-10": {
			Day:  date,
			Open: []domain.OpenHoursEntry{{StartTime: "09:00", EndTime: "11:00"}},
		},
	}}
	bookings := &fakeBookingRepo{bookings: map[string][]*domain.Booking{}}

	uc := newTestUseCase(services, availability, bookings, now)

	// 90 минут помещаются только в 09:00 и 09:30
	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, AddonIDs: []int64{2}, Date: date})
	require.NoError(t, err)

	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, resp.Times)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, DurationMinutes: 60, IsAddon: false},
		2: {ID: 2, DurationMinutes: 30, IsAddon: true},
	}}
	availability := &fakeAvailability{days: map[string]*domain.DayAvailability{}}
	bookings := &fakeBookingRepo{bookings: map[string][]*domain.Booking{}}

	uc := newTestUseCase(services, availability, bookings, now)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: 99, Date: date})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 2, Date: date})
	assert.ErrorIs(t, err, ErrIsAddon)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1, AddonIDs: []int64{1}, Date: date})
	assert.ErrorIs(t, err, ErrNotAnAddon)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1, AddonIDs: []int64{42}, Date: date})
	assert.ErrorIs(t, err, ErrAddonNotFound)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 0, Date: date})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_NoOpenHours(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, DurationMinutes: 60, IsAddon: false},
	}}

	uc := newTestUseCase(services, &fakeAvailability{days: map[string]*domain.DayAvailability{}}, &fakeBookingRepo{}, now)

	// День без рабочих часов - пустой список, не ошибка
	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date})
	require.NoError(t, err)
	assert.Empty(t, resp.Times)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	past := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, DurationMinutes: 60, IsAddon: false},
	}}

	uc := newTestUseCase(services, &fakeAvailability{days: map[string]*domain.DayAvailability{}}, &fakeBookingRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: past})
	require.NoError(t, err)
	assert.Empty(t, resp.Times)
}

func TestUseCase_Execute_SameDayCutoff(t *testing.T) {
	date := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	// Сейчас 10:05, запас 30 минут: слоты раньше 10:35 не выдаются
	now := time.Date(2026, 9, 10, 10, 5, 0, 0, time.UTC)

	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, DurationMinutes: 30, IsAddon: false},
	}}
	availability := &fakeAvailability{days: map[string]*domain.DayAvailability{
		"2026-09-10": {
			Day:  date,
			Open: []domain.OpenHoursEntry{{StartTime: "09:00", EndTime: "12:00"}},
		},
	}}

	uc := newTestUseCase(services, availability, &fakeBookingRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: 1, Date: date})
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"11:00", "11:30"}, resp.Times)
}
