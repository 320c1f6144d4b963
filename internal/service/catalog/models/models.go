package models

import "github.com/barbearia-jao/agenda-service/internal/domain"

// ServiceResponse ответ с данными услуги каталога
type ServiceResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	BasePrice       float64 `json:"basePrice"`
	DurationMinutes int     `json:"durationMinutes"`
	Active          bool    `json:"active"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []*ServiceResponse `json:"services"`
	Total    int                `json:"total"`
}

// FromDomainService конвертирует domain модель в response
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Category:        s.Category,
		BasePrice:       s.BasePrice,
		DurationMinutes: s.DurationMinutes,
		Active:          s.Active,
	}
}

// FromDomainServiceList конвертирует список domain моделей в response
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	items := make([]*ServiceResponse, 0, len(services))
	for _, s := range services {
		items = append(items, FromDomainService(s))
	}
	return &ServiceListResponse{Services: items, Total: len(items)}
}
