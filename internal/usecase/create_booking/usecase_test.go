package create_booking

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

type fakeBookingRepo struct {
	bookings []*domain.Booking
	nextID   int64
	eventIDs map[int64]*string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1, eventIDs: make(map[int64]*string)}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = f.nextID
	f.nextID++
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

func (f *fakeBookingRepo) GetByDate(_ context.Context, date time.Time, activeOnly bool) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if !b.Date.Equal(date) {
			continue
		}
		if activeOnly && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) SetGoogleEventID(_ context.Context, id int64, eventID *string) error {
	f.eventIDs[id] = eventID
	return nil
}

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

type fakeCalendar struct {
	pushed []int64
	fail   bool
}

func (f *fakeCalendar) PushEvent(_ context.Context, booking *domain.Booking) (string, error) {
	if f.fail {
		return "", assert.AnError
	}
	f.pushed = append(f.pushed, booking.ID)
	return "evt-1", nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

var (
	testDate = time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
)

func newTestSetup() (*UseCase, *fakeBookingRepo, *fakeCalendar) {
	bookings := newFakeBookingRepo()
	calendar := &fakeCalendar{}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		1: {ID: 1, Name: "Manicure", DurationMinutes: 60, PriceMin: 40, PriceMax: 60, IsAddon: false},
		2: {ID: 2, Name: "Design", DurationMinutes: 30, PriceMin: 10, PriceMax: 10, IsAddon: true},
	}}
	availability := &fakeAvailability{days: map[string]*domain.DayAvailability{
		"2026-09-10": {
			Day:  testDate,
			Open: []domain.OpenHoursEntry{{StartTime: "09:00", EndTime: "17:00"}},
		},
	}}

	uc := NewUseCase(bookings, services, availability, calendar, &fakeTxManager{}, &noopLogger{}, time.UTC, 30, 30)
	uc.timeProvider = &fixedTime{now: testNow}

	return uc, bookings, calendar
}

func validRequest() *Request {
	return &Request{
		ServiceID:   1,
		Date:        testDate,
		StartTime:   types.TimeString("10:00"),
		ClientName:  "Anna",
		ClientEmail: "anna@example.com",
		ClientPhone: "+48123456789",
		Language:    "pl",
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	uc, bookings, calendar := newTestSetup()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Manicure", resp.ServiceName)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, 40.0, resp.Price)

	require.Len(t, bookings.bookings, 1)
	assert.Equal(t, domain.StatusActive, bookings.bookings[0].Status)

	// Событие календаря создано и привязано
	assert.Equal(t, []int64{resp.ID}, calendar.pushed)
	require.NotNil(t, bookings.eventIDs[resp.ID])
	assert.Equal(t, "evt-1", *bookings.eventIDs[resp.ID])
}

func TestUseCase_Execute_WithAddons(t *testing.T) {
	uc, bookings, _ := newTestSetup()

	req := validRequest()
	req.AddonIDs = []int64{2}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Длительность и цена - снимок услуги с дополнениями
	assert.Equal(t, 90, resp.DurationMinutes)
	assert.Equal(t, 50.0, resp.Price)
	assert.Equal(t, 90, bookings.bookings[0].DurationMinutes)
}

func TestUseCase_Execute_SlotTaken(t *testing.T) {
	uc, _, _ := newTestSetup()

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Второй запрос на пересекающийся интервал отклоняется
	req := validRequest()
	req.StartTime = types.TimeString("10:30")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUseCase_Execute_CancelledBookingFreesSlot(t *testing.T) {
	uc, bookings, _ := newTestSetup()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Отменяем созданное бронирование напрямую в хранилище
	bookings.bookings[0].Status = domain.StatusCancelled
	_ = resp

	// Тот же слот снова доступен
	_, err = uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestUseCase_Execute_OutsideOpenHours(t *testing.T) {
	uc, _, _ := newTestSetup()

	req := validRequest()
	req.StartTime = types.TimeString("08:00")
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Хвост услуги вылезает за закрытие
	req = validRequest()
	req.StartTime = types.TimeString("16:30")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestUseCase_Execute_MisalignedStartTime(t *testing.T) {
	uc, _, _ := newTestSetup()

	req := validRequest()
	req.StartTime = types.TimeString("10:17")
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	uc, _, _ := newTestSetup()

	req := validRequest()
	req.Date = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_TooLateForToday(t *testing.T) {
	uc, _, _ := newTestSetup()

	// Бронируем на сегодня: сейчас 12:00, запас 30 минут
	req := validRequest()
	req.Date = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	req.StartTime = types.TimeString("12:00")
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestUseCase_Execute_ValidationErrors(t *testing.T) {
	uc, _, _ := newTestSetup()

	req := validRequest()
	req.ClientName = ""
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.ClientEmail = "not-an-email"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Language = "de"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.AddonIDs = []int64{1}
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNotAnAddon)
}

func TestUseCase_Execute_CalendarFailureDoesNotFailBooking(t *testing.T) {
	uc, bookings, calendar := newTestSetup()
	calendar.fail = true

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Бронирование создано, ссылки на событие нет
	require.Len(t, bookings.bookings, 1)
	_, hasEvent := bookings.eventIDs[resp.ID]
	assert.False(t, hasEvent)
}
