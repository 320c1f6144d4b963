package create_appointment

import (
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	createAppointment "github.com/barbearia-jao/agenda-service/internal/usecase/create_appointment"
	"github.com/barbearia-jao/agenda-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Date          string   `json:"date"`      // "2026-01-05"
	StartTime     string   `json:"startTime"` // "10:00"
	EndTime       *string  `json:"endTime,omitempty"`
	ClientName    string   `json:"clientName"`
	Phone         string   `json:"phone,omitempty"`
	ServiceID     *int64   `json:"serviceId,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Status        string   `json:"status,omitempty"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64    `json:"id"`
	Date          string   `json:"date"`
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime"`
	Status        string   `json:"status"`
	ClientID      *int64   `json:"clientId,omitempty"`
	ClientName    string   `json:"clientName"`
	Phone         string   `json:"phone,omitempty"`
	ServiceID     *int64   `json:"serviceId,omitempty"`
	ServiceName   string   `json:"serviceName,omitempty"`
	Price         float64  `json:"price"`
	PaymentStatus string   `json:"paymentStatus"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	NetValue      *float64 `json:"netValue,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	CreatedAt     string   `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	req := &createAppointment.Request{
		Date:          date,
		StartTime:     startTime,
		ClientName:    r.ClientName,
		Phone:         r.Phone,
		ServiceID:     r.ServiceID,
		Price:         r.Price,
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
	}

	if r.EndTime != nil && *r.EndTime != "" {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = endTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Status:        resp.Status,
		ClientID:      resp.ClientID,
		ClientName:    resp.ClientName,
		Phone:         resp.Phone,
		ServiceID:     resp.ServiceID,
		ServiceName:   resp.ServiceName,
		Price:         resp.Price,
		PaymentStatus: resp.PaymentStatus,
		PaymentMethod: resp.PaymentMethod,
		NetValue:      resp.NetValue,
		Notes:         resp.Notes,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
