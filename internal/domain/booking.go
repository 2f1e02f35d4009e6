package domain

import (
	"time"

	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a confirmed appointment in the ledger
type Booking struct {
	ID              int64
	ServiceID       int64
	AddonIDs        []int64
	Date            time.Time // календарная дата без времени
	StartTime       types.TimeString
	DurationMinutes int // снимок длительности: услуга + все add-on'ы на момент создания
	Status          BookingStatus

	ClientName  string
	ClientEmail string
	ClientPhone string
	Language    string

	// Опциональное свободное пожелание клиента с вложением,
	// на расчет слотов не влияет
	CustomRequest *string
	CustomImage   *string

	// Token непрозрачный идентификатор для самостоятельного управления
	// бронированием без аутентификации (просмотр/отмена)
	Token string

	// Price снимок цены на момент создания
	Price float64

	// Denormalized data for history
	ServiceName string

	// GoogleEventID ссылка на событие во внешнем календаре (если синхронизировано)
	GoogleEventID *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking still occupies its time range
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusActive
}

// Footprint returns the occupied range [StartTime, StartTime+Duration)
// in minutes since midnight
func (b *Booking) Footprint() (Range, error) {
	start, err := b.StartTime.Minutes()
	if err != nil {
		return Range{}, err
	}
	return Range{Start: start, End: start + b.DurationMinutes}, nil
}

// BookingsFilter фильтр для получения бронирований за период
type BookingsFilter struct {
	FromDate         *time.Time // Начало периода (опционально)
	ToDate           *time.Time // Конец периода (опционально)
	IncludeCancelled bool       // Включать ли отмененные бронирования
}
