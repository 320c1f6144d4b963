package create_appointment

import (
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	"github.com/barbearia-jao/agenda-service/pkg/types"
)

// Request запрос на создание записи
type Request struct {
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString // опционально; по умолчанию длительность услуги или 30 минут
	ClientName string
	Phone      string // опционально
	ServiceID  *int64
	Price      *float64 // переопределение цены услуги (опционально)
	Status     string   // опционально; по умолчанию agendado

	// Для ретроактивной регистрации уже оказанной услуги
	PaymentMethod *string
	Notes         *string
}

// Response созданная запись
type Response struct {
	ID            int64            `json:"id"`
	Date          time.Time        `json:"date"`
	StartTime     types.TimeString `json:"startTime"`
	EndTime       types.TimeString `json:"endTime"`
	Status        string           `json:"status"`
	ClientID      *int64           `json:"clientId,omitempty"`
	ClientName    string           `json:"clientName"`
	Phone         string           `json:"phone,omitempty"`
	ServiceID     *int64           `json:"serviceId,omitempty"`
	ServiceName   string           `json:"serviceName"`
	Price         float64          `json:"price"`
	PaymentStatus string           `json:"paymentStatus"`
	PaymentMethod *string          `json:"paymentMethod,omitempty"`
	NetValue      *float64         `json:"netValue,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func toResponse(apt *domain.Appointment) *Response {
	resp := &Response{
		ID:            apt.ID,
		Date:          apt.Date,
		StartTime:     apt.StartTime,
		EndTime:       apt.EndTime,
		Status:        string(apt.Status),
		ClientID:      apt.ClientID,
		ClientName:    apt.ClientName,
		Phone:         apt.Phone,
		ServiceID:     apt.ServiceID,
		ServiceName:   apt.ServiceName,
		Price:         apt.Price,
		PaymentStatus: string(apt.PaymentStatus),
		NetValue:      apt.NetValue,
		Notes:         apt.Notes,
		CreatedAt:     apt.CreatedAt,
	}
	if apt.PaymentMethod != nil {
		m := string(*apt.PaymentMethod)
		resp.PaymentMethod = &m
	}
	return resp
}
