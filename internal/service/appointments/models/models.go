package models

import (
	"errors"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	"github.com/barbearia-jao/agenda-service/pkg/phone"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListAppointmentsRequest запрос на получение записей с фильтрацией
type ListAppointmentsRequest struct {
	Date             *time.Time `json:"date,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Status           *string    `json:"status,omitempty"`
	ExcludeCancelled bool       `json:"excludeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		Date:             r.Date,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		ExcludeCancelled: r.ExcludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// ToDomainStatus конвертирует строку в domain.AppointmentStatus
func ToDomainStatus(s string) (domain.AppointmentStatus, error) {
	switch domain.AppointmentStatus(s) {
	case domain.StatusScheduled, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled:
		return domain.AppointmentStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID            int64    `json:"id"`
	Date          string   `json:"date"` // "2026-01-05"
	StartTime     string   `json:"startTime"`
	EndTime       string   `json:"endTime,omitempty"`
	Status        string   `json:"status"`
	ClientID      *int64   `json:"clientId,omitempty"`
	ClientName    string   `json:"clientName"`
	Phone         string   `json:"phone,omitempty"`
	PhoneDisplay  string   `json:"phoneDisplay,omitempty"`
	ServiceID     *int64   `json:"serviceId,omitempty"`
	ServiceName   string   `json:"serviceName"`
	Price         float64  `json:"price"`
	PaymentStatus string   `json:"paymentStatus"`
	PaymentMethod *string  `json:"paymentMethod,omitempty"`
	PaidAmount    float64  `json:"paidAmount"`
	NetValue      *float64 `json:"netValue,omitempty"`
	AppliedFee    *float64 `json:"appliedFee,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
	WhatsAppLink  string   `json:"whatsappLink,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	Total        int                    `json:"total"`
}

// FromDomainAppointment конвертирует domain модель в response
func FromDomainAppointment(apt *domain.Appointment) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:            apt.ID,
		Date:          apt.Date.Format(domain.DateFormat),
		StartTime:     apt.StartTime.String(),
		EndTime:       apt.EndTime.String(),
		Status:        string(apt.Status),
		ClientID:      apt.ClientID,
		ClientName:    apt.ClientName,
		Phone:         apt.Phone,
		PhoneDisplay:  phone.FormatDisplay(apt.Phone),
		ServiceID:     apt.ServiceID,
		ServiceName:   apt.ServiceName,
		Price:         apt.Price,
		PaymentStatus: string(apt.PaymentStatus),
		PaidAmount:    apt.PaidAmount,
		NetValue:      apt.NetValue,
		AppliedFee:    apt.AppliedFee,
		Notes:         apt.Notes,
		CreatedAt:     apt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     apt.UpdatedAt.Format(time.RFC3339),
	}

	if apt.PaymentMethod != nil {
		method := string(*apt.PaymentMethod)
		resp.PaymentMethod = &method
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в response
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	items := make([]*AppointmentResponse, 0, len(appointments))
	for _, apt := range appointments {
		items = append(items, FromDomainAppointment(apt))
	}
	return &AppointmentListResponse{
		Appointments: items,
		Total:        len(items),
	}
}

// OverviewResponse сводка за период: выручка и распределение по способам оплаты
type OverviewResponse struct {
	StartDate        string             `json:"startDate"`
	EndDate          string             `json:"endDate"`
	TotalCompleted   int                `json:"totalCompleted"`
	TotalScheduled   int                `json:"totalScheduled"`
	TotalCancelled   int                `json:"totalCancelled"`
	GrossRevenue     float64            `json:"grossRevenue"`
	NetRevenue       float64            `json:"netRevenue"`
	TotalFees        float64            `json:"totalFees"`
	UnpaidAmount     float64            `json:"unpaidAmount"`
	RevenueByMethod  map[string]float64 `json:"revenueByMethod"`
	PaymentsRecorded int                `json:"paymentsRecorded"`
}
