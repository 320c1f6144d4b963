package complete_appointment

import "github.com/barbearia-jao/agenda-service/internal/domain"

// Request запрос на завершение записи с расчетом
type Request struct {
	ID     int64
	Method string   // способ оплаты, включая nao_pago
	Amount *float64 // по умолчанию цена записи
}

// Response результат завершения
type Response struct {
	ID            int64   `json:"id"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentMethod string  `json:"paymentMethod"`
	PaidAmount    float64 `json:"paidAmount"`
	NetValue      float64 `json:"netValue"`
	AppliedFee    float64 `json:"appliedFee"`
	DebtCreated   bool    `json:"debtCreated"`
}

func toResponse(apt *domain.Appointment, method domain.PaymentMethod, netValue, appliedFee float64, debtCreated bool) *Response {
	return &Response{
		ID:            apt.ID,
		Status:        string(domain.StatusCompleted),
		PaymentStatus: string(apt.PaymentStatus),
		PaymentMethod: string(method),
		PaidAmount:    apt.PaidAmount,
		NetValue:      netValue,
		AppliedFee:    appliedFee,
		DebtCreated:   debtCreated,
	}
}
