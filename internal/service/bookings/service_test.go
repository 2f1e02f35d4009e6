package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	storage "github.com/m04kA/SLN-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/SLN-BookingService/internal/service/bookings/models"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

type fakeRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	repo := &fakeRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, storage.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeRepo) GetByToken(_ context.Context, token string) (*domain.Booking, error) {
	for _, b := range f.bookings {
		if b.Token == token {
			return b, nil
		}
	}
	return nil, storage.ErrBookingNotFound
}

func (f *fakeRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if !filter.IncludeCancelled && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64) error {
	b, ok := f.bookings[id]
	if !ok {
		return storage.ErrBookingNotFound
	}
	if !b.IsActive() {
		return storage.ErrCannotCancel
	}
	b.Status = domain.StatusCancelled
	return nil
}

func (f *fakeRepo) SetGoogleEventID(_ context.Context, id int64, eventID *string) error {
	if b, ok := f.bookings[id]; ok {
		b.GoogleEventID = eventID
	}
	return nil
}

type fakeCalendar struct {
	removed []string
	fail    bool
}

func (f *fakeCalendar) RemoveEvent(_ context.Context, eventID string) error {
	if f.fail {
		return assert.AnError
	}
	f.removed = append(f.removed, eventID)
	return nil
}

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

func strPtr(s string) *string {
	return &s
}

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:              1,
		ServiceID:       10,
		ServiceName:     "Manicure",
		Date:            time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusActive,
		Token:           "tok-1",
		GoogleEventID:   strPtr("evt-1"),
	}
}

func TestService_GetByToken(t *testing.T) {
	repo := newFakeRepo(activeBooking())
	svc := NewService(repo, &fakeCalendar{}, &noopLogger{})

	booking, err := svc.GetByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), booking.ID)
	assert.Equal(t, "Manicure", booking.ServiceName)

	_, err = svc.GetByToken(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_CancelByToken(t *testing.T) {
	repo := newFakeRepo(activeBooking())
	calendar := &fakeCalendar{}
	svc := NewService(repo, calendar, &noopLogger{})

	booking, err := svc.CancelByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), booking.Status)

	// Событие календаря удалено, ссылка очищена
	assert.Equal(t, []string{"evt-1"}, calendar.removed)
	assert.Nil(t, repo.bookings[1].GoogleEventID)

	// Повторная отмена отклоняется
	_, err = svc.CancelByToken(context.Background(), "tok-1")
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestService_CancelByToken_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeCalendar{}, &noopLogger{})

	_, err := svc.CancelByToken(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_CancelByToken_CalendarFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepo(activeBooking())
	calendar := &fakeCalendar{fail: true}
	svc := NewService(repo, calendar, &noopLogger{})

	booking, err := svc.CancelByToken(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), booking.Status)

	// Ссылка на событие остается для пакетной сверки
	require.NotNil(t, repo.bookings[1].GoogleEventID)
	assert.Equal(t, "evt-1", *repo.bookings[1].GoogleEventID)
}

func TestService_List(t *testing.T) {
	cancelled := activeBooking()
	cancelled.ID = 2
	cancelled.Token = "tok-2"
	cancelled.Status = domain.StatusCancelled

	repo := newFakeRepo(activeBooking(), cancelled)
	svc := NewService(repo, &fakeCalendar{}, &noopLogger{})

	list, err := svc.List(context.Background(), models.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = svc.List(context.Background(), models.ListFilter{IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
