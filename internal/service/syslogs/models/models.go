package models

import (
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

// SystemLogResponse ответ с записью журнала событий
type SystemLogResponse struct {
	ID        int64                  `json:"id"`
	Type      string                 `json:"type"`
	Origin    string                 `json:"origin"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CreatedAt string                 `json:"createdAt"`
}

// SystemLogListResponse ответ со списком записей журнала
type SystemLogListResponse struct {
	Logs  []*SystemLogResponse `json:"logs"`
	Total int                  `json:"total"`
}

// FromDomainSystemLog конвертирует domain модель в response
func FromDomainSystemLog(l *domain.SystemLog) *SystemLogResponse {
	return &SystemLogResponse{
		ID:        l.ID,
		Type:      l.Type,
		Origin:    l.Origin,
		Message:   l.Message,
		Details:   l.Details,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}

// FromDomainSystemLogList конвертирует список domain моделей в response
func FromDomainSystemLogList(logs []*domain.SystemLog) *SystemLogListResponse {
	items := make([]*SystemLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, FromDomainSystemLog(l))
	}
	return &SystemLogListResponse{Logs: items, Total: len(items)}
}
