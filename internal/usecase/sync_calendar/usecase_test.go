package sync_calendar

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/internal/integrations/googlecalendar"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return f.bookings, nil
}

func (f *fakeBookingRepo) SetGoogleEventID(_ context.Context, id int64, eventID *string) error {
	for _, b := range f.bookings {
		if b.ID == id {
			b.GoogleEventID = eventID
			return nil
		}
	}
	return nil
}

// fakeCalendar хранит события в памяти и ведет себя как настоящий мост
type fakeCalendar struct {
	events   map[string]struct{}
	nextID   int
	failPush bool
	disabled bool
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{events: make(map[string]struct{}), nextID: 1}
}

func (f *fakeCalendar) PushEvent(_ context.Context, _ *domain.Booking) (string, error) {
	if f.failPush {
		return "", assert.AnError
	}
	id := fmt.Sprintf("evt-%d", f.nextID)
	f.nextID++
	f.events[id] = struct{}{}
	return id, nil
}

func (f *fakeCalendar) RemoveEvent(_ context.Context, eventID string) error {
	delete(f.events, eventID)
	return nil
}

func (f *fakeCalendar) ListEventIDs(_ context.Context, _, _ time.Time) (map[string]struct{}, error) {
	if f.disabled {
		return nil, googlecalendar.ErrSyncDisabled
	}
	existing := make(map[string]struct{}, len(f.events))
	for id := range f.events {
		existing[id] = struct{}{}
	}
	return existing, nil
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

func strPtr(s string) *string {
	return &s
}

func testBooking(id int64, status domain.BookingStatus, eventID *string) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		ServiceID:       1,
		Date:            time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          status,
		GoogleEventID:   eventID,
	}
}

func newTestUseCase(repo *fakeBookingRepo, calendar *fakeCalendar) *UseCase {
	uc := NewUseCase(repo, calendar, &noopLogger{}, time.UTC)
	uc.timeProvider = &fixedTime{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

func TestUseCase_Execute_Reconcile(t *testing.T) {
	calendar := newFakeCalendar()
	calendar.events["evt-live"] = struct{}{}

	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		testBooking(1, domain.StatusActive, nil),                // нет события - создать
		testBooking(2, domain.StatusActive, strPtr("evt-live")), // событие на месте
		testBooking(3, domain.StatusActive, strPtr("evt-gone")), // событие пропало - восстановить
		testBooking(4, domain.StatusCancelled, strPtr("evt-live")),
		testBooking(5, domain.StatusCancelled, nil), // уже чистое - не трогаем
	}}

	uc := newTestUseCase(repo, calendar)

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Pushed)
	assert.Equal(t, 1, resp.Restored)
	assert.Equal(t, 1, resp.Removed)
	assert.Equal(t, 0, resp.Failed)

	require.NotNil(t, repo.bookings[0].GoogleEventID)
	require.NotNil(t, repo.bookings[2].GoogleEventID)
	assert.NotEqual(t, "evt-gone", *repo.bookings[2].GoogleEventID)
	assert.Nil(t, repo.bookings[3].GoogleEventID)
}

func TestUseCase_Execute_Idempotent(t *testing.T) {
	calendar := newFakeCalendar()
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		testBooking(1, domain.StatusActive, nil),
		testBooking(2, domain.StatusCancelled, nil),
	}}

	uc := newTestUseCase(repo, calendar)

	first, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Pushed)

	// Повторный запуск ничего не меняет
	second, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Pushed)
	assert.Equal(t, 0, second.Restored)
	assert.Equal(t, 0, second.Removed)
	assert.Equal(t, 0, second.Failed)
}

func TestUseCase_Execute_DefaultWindow(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, newFakeCalendar())

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), resp.From)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), resp.To)
}

func TestUseCase_Execute_InvalidWindow(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, newFakeCalendar())

	_, err := uc.Execute(context.Background(), &Request{
		From: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUseCase_Execute_SyncDisabled(t *testing.T) {
	calendar := newFakeCalendar()
	calendar.disabled = true

	uc := newTestUseCase(&fakeBookingRepo{}, calendar)

	_, err := uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrSyncDisabled)
}

func TestUseCase_Execute_PushFailureCounted(t *testing.T) {
	calendar := newFakeCalendar()
	calendar.failPush = true

	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		testBooking(1, domain.StatusActive, nil),
	}}

	uc := newTestUseCase(repo, calendar)

	resp, err := uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Pushed)
	assert.Equal(t, 1, resp.Failed)
	assert.Nil(t, repo.bookings[0].GoogleEventID)
}
