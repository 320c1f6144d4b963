package models

import (
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	"github.com/barbearia-jao/agenda-service/pkg/phone"
)

// ClientResponse ответ с данными клиента
type ClientResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Phone        string  `json:"phone,omitempty"`
	PhoneDisplay string  `json:"phoneDisplay,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

// ClientListResponse ответ со списком клиентов
type ClientListResponse struct {
	Clients []*ClientResponse `json:"clients"`
	Total   int               `json:"total"`
}

// FromDomainClient конвертирует domain модель в response
func FromDomainClient(c *domain.Client) *ClientResponse {
	return &ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		Phone:        c.Phone,
		PhoneDisplay: phone.FormatDisplay(c.Phone),
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainClientList конвертирует список domain моделей в response
func FromDomainClientList(clients []*domain.Client) *ClientListResponse {
	items := make([]*ClientResponse, 0, len(clients))
	for _, c := range clients {
		items = append(items, FromDomainClient(c))
	}
	return &ClientListResponse{Clients: items, Total: len(items)}
}
