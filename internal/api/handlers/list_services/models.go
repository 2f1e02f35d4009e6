package list_services

import "github.com/m04kA/SLN-BookingService/internal/domain"

// ServiceResponse HTTP модель услуги каталога
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	PriceMin        float64 `json:"priceMin"`
	PriceMax        float64 `json:"priceMax"`
}

// ListServicesResponse HTTP response model
type ListServicesResponse struct {
	Services []ServiceResponse `json:"services"`
	Addons   []ServiceResponse `json:"addons"`
}

// FromDomain конвертирует доменные услуги в HTTP response
func FromDomain(services, addons []*domain.Service) *ListServicesResponse {
	return &ListServicesResponse{
		Services: toResponses(services),
		Addons:   toResponses(addons),
	}
}

func toResponses(list []*domain.Service) []ServiceResponse {
	result := make([]ServiceResponse, 0, len(list))
	for _, s := range list {
		result = append(result, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			PriceMin:        s.PriceMin,
			PriceMax:        s.PriceMax,
		})
	}
	return result
}
