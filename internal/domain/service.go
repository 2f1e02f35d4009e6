package domain

import "time"

// Service represents a bookable service or an add-on in the catalog
// Add-ons have no schedule of their own: they only extend the duration
// and price of a main-service booking
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	PriceMin        float64
	PriceMax        float64 // равно PriceMin для фиксированной цены
	IsAddon         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasPriceRange returns true if the service is priced as a min-max range
func (s *Service) HasPriceRange() bool {
	return s.PriceMax > s.PriceMin
}

// TotalDuration returns the booking footprint of a main service with the
// selected add-ons, in minutes. Zero-duration add-ons are legal and simply
// do not extend the footprint.
func TotalDuration(service *Service, addons []*Service) int {
	total := service.DurationMinutes
	for _, a := range addons {
		total += a.DurationMinutes
	}
	return total
}

// TotalPrice returns the price snapshot stored on a booking: the minimum
// price of the main service plus the minimum price of each add-on
func TotalPrice(service *Service, addons []*Service) float64 {
	total := service.PriceMin
	for _, a := range addons {
		total += a.PriceMin
	}
	return total
}
