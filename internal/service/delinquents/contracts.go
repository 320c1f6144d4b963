package delinquents

import (
	"context"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

// DelinquentRepository интерфейс репозитория неплательщиков
type DelinquentRepository interface {
	Create(ctx context.Context, d *domain.Delinquent) (*domain.Delinquent, error)
	GetByID(ctx context.Context, id int64) (*domain.Delinquent, error)
	List(ctx context.Context, status *domain.DelinquencyStatus) ([]*domain.Delinquent, error)
	Settle(ctx context.Context, id int64, amountPaid, amountRemaining float64, status domain.DelinquencyStatus) error
	RegisterContact(ctx context.Context, id int64) error
	UpdateDaysOverdue(ctx context.Context, id int64, days int) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	SetPayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus, method domain.PaymentMethod, paidAmount, netValue, appliedFee float64) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
}

// SystemLogRepository интерфейс журнала системных событий
type SystemLogRepository interface {
	Create(ctx context.Context, entry *domain.SystemLog) error
}

// WhatsAppLinker строит deep-link'и для переписки с клиентом
type WhatsAppLinker interface {
	ChargeLink(phone, clientName string) string
}

// Notifier интерфейс для оповещения подключенных клиентов об изменениях
type Notifier interface {
	PublishRefetch(reason string, views ...string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
