package models

import (
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	"github.com/barbearia-jao/agenda-service/pkg/phone"
)

// Request модели

// CreateDelinquentRequest запрос на ручное создание записи о долге
type CreateDelinquentRequest struct {
	ClientName  string     `json:"clientName"`
	Phone       string     `json:"phone,omitempty"`
	ServiceName string     `json:"serviceName,omitempty"`
	AmountOwed  float64    `json:"amountOwed"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

// SettleDelinquentRequest запрос на регистрацию оплаты долга
type SettleDelinquentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

// Response модели

// DelinquentResponse ответ с данными о долге
type DelinquentResponse struct {
	ID              int64   `json:"id"`
	AppointmentID   *int64  `json:"appointmentId,omitempty"`
	ClientID        *int64  `json:"clientId,omitempty"`
	ClientName      string  `json:"clientName"`
	Phone           string  `json:"phone,omitempty"`
	PhoneDisplay    string  `json:"phoneDisplay,omitempty"`
	ServiceName     string  `json:"serviceName,omitempty"`
	AmountOwed      float64 `json:"amountOwed"`
	AmountPaid      float64 `json:"amountPaid"`
	AmountRemaining float64 `json:"amountRemaining"`
	DueDate         *string `json:"dueDate,omitempty"`
	ServiceDate     *string `json:"serviceDate,omitempty"`
	DaysOverdue     int     `json:"daysOverdue"`
	Status          string  `json:"status"`
	ContactAttempts int     `json:"contactAttempts"`
	LastContactAt   *string `json:"lastContactAt,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// DelinquentListResponse ответ со списком долгов
type DelinquentListResponse struct {
	Delinquents    []*DelinquentResponse `json:"delinquents"`
	Total          int                   `json:"total"`
	TotalRemaining float64               `json:"totalRemaining"`
}

// ContactResponse ответ на регистрацию контакта с должником
type ContactResponse struct {
	ID              int64  `json:"id"`
	ContactAttempts int    `json:"contactAttempts"`
	WhatsAppLink    string `json:"whatsappLink"`
}

// FromDomainDelinquent конвертирует domain модель в response
func FromDomainDelinquent(d *domain.Delinquent) *DelinquentResponse {
	resp := &DelinquentResponse{
		ID:              d.ID,
		AppointmentID:   d.AppointmentID,
		ClientID:        d.ClientID,
		ClientName:      d.ClientName,
		Phone:           d.Phone,
		PhoneDisplay:    phone.FormatDisplay(d.Phone),
		ServiceName:     d.ServiceName,
		AmountOwed:      d.AmountOwed,
		AmountPaid:      d.AmountPaid,
		AmountRemaining: d.AmountRemaining,
		DaysOverdue:     d.DaysOverdue,
		Status:          string(d.Status),
		ContactAttempts: d.ContactAttempts,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt.Format(time.RFC3339),
	}

	if d.DueDate != nil {
		due := d.DueDate.Format(domain.DateFormat)
		resp.DueDate = &due
	}
	if d.ServiceDate != nil {
		svc := d.ServiceDate.Format(domain.DateFormat)
		resp.ServiceDate = &svc
	}
	if d.LastContactAt != nil {
		last := d.LastContactAt.Format(time.RFC3339)
		resp.LastContactAt = &last
	}

	return resp
}

// FromDomainDelinquentList конвертирует список domain моделей в response
func FromDomainDelinquentList(delinquents []*domain.Delinquent) *DelinquentListResponse {
	items := make([]*DelinquentResponse, 0, len(delinquents))
	var totalRemaining float64
	for _, d := range delinquents {
		items = append(items, FromDomainDelinquent(d))
		if !d.IsSettled() {
			totalRemaining += d.AmountRemaining
		}
	}
	return &DelinquentListResponse{
		Delinquents:    items,
		Total:          len(items),
		TotalRemaining: totalRemaining,
	}
}
