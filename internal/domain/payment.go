package domain

import "time"

// PaymentMethod is one of the fixed payment options of the card terminal
// fee schedule. MethodUnpaid is the pseudo-method for "completed without
// payment": it yields no revenue and creates a delinquent record instead.
type PaymentMethod string

const (
	MethodCash              PaymentMethod = "dinheiro"
	MethodPix               PaymentMethod = "pix"
	MethodDebit             PaymentMethod = "debito"
	MethodCreditSingle      PaymentMethod = "credito_vista"
	MethodCreditInstallment PaymentMethod = "credito_parcelado"
	MethodUnpaid            PaymentMethod = "nao_pago"
)

// PaymentFees таблица комиссий эквайринга в процентах
var PaymentFees = map[PaymentMethod]float64{
	MethodCash:              0,
	MethodPix:               0,
	MethodDebit:             1.38,
	MethodCreditSingle:      3.16,
	MethodCreditInstallment: 12.41,
}

// IsValid reports whether the method is one of the known options.
func (m PaymentMethod) IsValid() bool {
	if m == MethodUnpaid {
		return true
	}
	_, ok := PaymentFees[m]
	return ok
}

// FeePercent returns the terminal fee for the method. Unknown methods and
// the unpaid pseudo-method carry no fee.
func FeePercent(method PaymentMethod) float64 {
	return PaymentFees[method]
}

// NetValue returns the amount actually received after the terminal fee.
// An unpaid method recognizes no revenue at all.
func NetValue(gross float64, method PaymentMethod) float64 {
	if method == MethodUnpaid {
		return 0
	}
	fee := gross * (FeePercent(method) / 100)
	return gross - fee
}

// Payment is a settled payment record tied to an appointment.
type Payment struct {
	ID            int64
	AppointmentID *int64
	ClientID      *int64
	Amount        float64
	Method        PaymentMethod
	Status        PaymentStatus
	PaidAt        time.Time
}
