package domain

import (
	"time"

	"github.com/barbearia-jao/agenda-service/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "agendado"
	StatusConfirmed AppointmentStatus = "confirmado"
	StatusCompleted AppointmentStatus = "concluido"
	StatusCancelled AppointmentStatus = "cancelado"
)

// PaymentStatus represents the payment state of an appointment
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pendente"
	PaymentPaid    PaymentStatus = "pago"
	PaymentUnpaid  PaymentStatus = "nao_pago" // completed without payment, goes to delinquents
)

// Appointment represents a barbershop appointment
type Appointment struct {
	ID        int64
	Date      time.Time        // calendar date (time part zeroed)
	StartTime types.TimeString // "HH:MM"
	EndTime   types.TimeString // "HH:MM", may be empty for legacy rows
	Status    AppointmentStatus

	// Client reference: either a client record or free-text contact data
	ClientID   *int64
	ClientName string
	Phone      string

	ServiceID   *int64
	ServiceName string

	Price float64

	PaymentStatus PaymentStatus
	PaymentMethod *PaymentMethod
	PaidAmount    float64
	NetValue      *float64
	AppliedFee    *float64

	Notes *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment occupies its time slots.
// Cancelled appointments never participate in conflict checks.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsCompleted returns true if the service has been performed.
func (a *Appointment) IsCompleted() bool {
	return a.Status == StatusCompleted
}

// EndOrDefault returns the recorded end time, or start + 30 minutes when no
// end time was stored.
func (a *Appointment) EndOrDefault() types.TimeString {
	if !a.EndTime.IsZero() {
		return a.EndTime
	}
	end, err := a.StartTime.AddMinutes(DefaultDurationMinutes)
	if err != nil {
		return a.StartTime
	}
	return end
}

// EndDateTime combines the appointment date with its (possibly defaulted)
// end time. Used by the auto-complete sweep.
func (a *Appointment) EndDateTime() time.Time {
	endMin, err := a.EndOrDefault().Minutes()
	if err != nil {
		return a.Date
	}
	return time.Date(a.Date.Year(), a.Date.Month(), a.Date.Day(), 0, 0, 0, 0, a.Date.Location()).
		Add(time.Duration(endMin) * time.Minute)
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	Date             *time.Time         // Конкретная дата (опционально)
	StartDate        *time.Time         // Начало периода (опционально)
	EndDate          *time.Time         // Конец периода (опционально)
	Status           *AppointmentStatus // Фильтр по статусу (опционально)
	ExcludeCancelled bool               // Исключить отмененные записи
}
