package domain

import "time"

// DelinquencyStatus lifecycle of a delinquent record
type DelinquencyStatus string

const (
	DelinquencyPending DelinquencyStatus = "pendente"
	DelinquencySettled DelinquencyStatus = "quitado"
)

// Delinquent is an unpaid debt record, created when an appointment is
// completed without full payment or entered manually.
type Delinquent struct {
	ID            int64
	AppointmentID *int64 // nil for manually created records
	ClientID      *int64
	ClientName    string
	Phone         string
	ServiceName   string

	AmountOwed      float64
	AmountPaid      float64
	AmountRemaining float64

	DueDate     *time.Time
	DaysOverdue int
	Status      DelinquencyStatus

	ContactAttempts int
	LastContactAt   *time.Time

	Notes *string

	// ServiceDate is the linked appointment's date when the record has
	// one; used as the authoritative base for DaysOverdue.
	ServiceDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComputeDaysOverdue пересчитывает просрочку на момент now.
// Когда есть привязанный агендамент, его дата авторитетна; data_vencimento
// используется только для записей, созданных вручную без агендамента.
// Если нет ни того ни другого, просрочка не меняется.
func (d *Delinquent) ComputeDaysOverdue(now time.Time) int {
	var base time.Time
	switch {
	case d.ServiceDate != nil:
		base = *d.ServiceDate
	case d.DueDate != nil:
		base = *d.DueDate
	default:
		return d.DaysOverdue
	}

	days := int(now.Sub(base).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsSettled reports whether the debt is fully paid.
func (d *Delinquent) IsSettled() bool {
	return d.Status == DelinquencySettled
}
