package models

import (
	"time"

	"github.com/m04kA/SLN-BookingService/internal/domain"
	"github.com/m04kA/SLN-BookingService/pkg/types"
)

// Booking представление бронирования для внешних слоев
type Booking struct {
	ID              int64
	ServiceID       int64
	ServiceName     string
	AddonIDs        []int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	Language        string
	CustomRequest   *string
	Price           float64
	Token           string
	CreatedAt       time.Time
}

// ListFilter фильтр для административной выборки бронирований
type ListFilter struct {
	FromDate         *time.Time
	ToDate           *time.Time
	IncludeCancelled bool
}

// FromDomain собирает DTO из доменного бронирования
func FromDomain(b *domain.Booking) *Booking {
	return &Booking{
		ID:              b.ID,
		ServiceID:       b.ServiceID,
		ServiceName:     b.ServiceName,
		AddonIDs:        b.AddonIDs,
		Date:            b.Date,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		Status:          string(b.Status),
		ClientName:      b.ClientName,
		ClientEmail:     b.ClientEmail,
		ClientPhone:     b.ClientPhone,
		Language:        b.Language,
		CustomRequest:   b.CustomRequest,
		Price:           b.Price,
		Token:           b.Token,
		CreatedAt:       b.CreatedAt,
	}
}

// FromDomainList собирает список DTO
func FromDomainList(list []*domain.Booking) []*Booking {
	result := make([]*Booking, 0, len(list))
	for _, b := range list {
		result = append(result, FromDomain(b))
	}
	return result
}
