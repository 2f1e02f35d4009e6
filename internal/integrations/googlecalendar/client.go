package googlecalendar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/m04kA/SLN-BookingService/internal/domain"
)

// Client клиент единственного внешнего календаря бизнеса
// Все вызовы best-effort: ошибки синхронизации логируются и никогда
// не влияют на корректность бронирований
type Client struct {
	svc        *calendar.Service
	calendarID string
	timeout    time.Duration
	loc        *time.Location
	log        Logger
}

// NewClient создает клиент Google Calendar по service-account ключу
func NewClient(ctx context.Context, credentialsFile, calendarID string, timeout time.Duration, loc *time.Location, log Logger) (*Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read credentials file: %v", ErrInternal, err)
	}

	conf, err := google.JWTConfigFromJSON(data, calendar.CalendarEventsScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse service account key: %v", ErrInternal, err)
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("%w: create calendar service: %v", ErrInternal, err)
	}

	return &Client{
		svc:        svc,
		calendarID: calendarID,
		timeout:    timeout,
		loc:        loc,
		log:        log,
	}, nil
}

// PushEvent создает событие для бронирования и возвращает его ID
func (c *Client) PushEvent(ctx context.Context, booking *domain.Booking) (string, error) {
	event, err := c.buildEvent(booking)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	created, err := c.svc.Events.Insert(c.calendarID, event).Context(callCtx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: insert event for booking id=%d: %v", ErrInternal, booking.ID, err)
	}

	c.log.Info("googlecalendar: pushed event id=%s for booking id=%d", created.Id, booking.ID)
	return created.Id, nil
}

// RemoveEvent удаляет событие по ID
// Уже удаленное событие не считается ошибкой - удаление идемпотентно
func (c *Client) RemoveEvent(ctx context.Context, eventID string) error {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.svc.Events.Delete(c.calendarID, eventID).Context(callCtx).Do()
	if err != nil {
		if isGone(err) {
			c.log.Info("googlecalendar: event id=%s already removed", eventID)
			return nil
		}
		return fmt.Errorf("%w: delete event id=%s: %v", ErrInternal, eventID, err)
	}

	c.log.Info("googlecalendar: removed event id=%s", eventID)
	return nil
}

// ListEventIDs возвращает ID событий сервиса в календаре за период
// Используется для сверки при пакетной синхронизации
func (c *Client) ListEventIDs(ctx context.Context, from, to time.Time) (map[string]struct{}, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	ids := make(map[string]struct{})
	pageToken := ""

	for {
		call := c.svc.Events.List(c.calendarID).
			TimeMin(from.In(c.loc).Format(time.RFC3339)).
			TimeMax(to.In(c.loc).AddDate(0, 0, 1).Format(time.RFC3339)).
			PrivateExtendedProperty("source=" + eventSource).
			SingleEvents(true).
			Context(callCtx)

		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		events, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("%w: list events: %v", ErrInternal, err)
		}

		for _, e := range events.Items {
			ids[e.Id] = struct{}{}
		}

		if events.NextPageToken == "" {
			break
		}
		pageToken = events.NextPageToken
	}

	return ids, nil
}

// buildEvent собирает событие календаря из бронирования
func (c *Client) buildEvent(booking *domain.Booking) (*calendar.Event, error) {
	startMinutes, err := booking.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid booking start time %q: %v", ErrInternal, booking.StartTime, err)
	}

	day := booking.Date.In(c.loc)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, startMinutes, 0, 0, c.loc)
	end := start.Add(time.Duration(booking.DurationMinutes) * time.Minute)

	description := []string{
		"Client: " + booking.ClientName,
		"Phone: " + booking.ClientPhone,
		"Email: " + booking.ClientEmail,
	}
	if booking.CustomRequest != nil && *booking.CustomRequest != "" {
		description = append(description, "Request: "+*booking.CustomRequest)
	}

	return &calendar.Event{
		Summary:     fmt.Sprintf("%s - %s", booking.ServiceName, booking.ClientName),
		Description: strings.Join(description, "\n"),
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: c.loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: c.loc.String(),
		},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				"source":     eventSource,
				"booking_id": fmt.Sprintf("%d", booking.ID),
			},
		},
	}, nil
}

// isGone проверяет, что событие уже удалено или не существует
func isGone(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusGone || apiErr.Code == http.StatusNotFound
}

// Disabled заглушка на случай выключенной интеграции
// Все операции возвращают ErrSyncDisabled; бронирования от этого не страдают
type Disabled struct{}

// NewDisabled создает выключенный клиент календаря
func NewDisabled() *Disabled {
	return &Disabled{}
}

func (d *Disabled) PushEvent(_ context.Context, _ *domain.Booking) (string, error) {
	return "", ErrSyncDisabled
}

func (d *Disabled) RemoveEvent(_ context.Context, _ string) error {
	return ErrSyncDisabled
}

func (d *Disabled) ListEventIDs(_ context.Context, _, _ time.Time) (map[string]struct{}, error) {
	return nil, ErrSyncDisabled
}
