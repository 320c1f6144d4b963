package complete_appointment

import (
	"context"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	SetPayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus, method domain.PaymentMethod, paidAmount, netValue, appliedFee float64) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
}

// DelinquentRepository интерфейс репозитория неплательщиков
type DelinquentRepository interface {
	Create(ctx context.Context, d *domain.Delinquent) (*domain.Delinquent, error)
	GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Delinquent, error)
}

// SystemLogRepository интерфейс журнала системных событий
type SystemLogRepository interface {
	Create(ctx context.Context, entry *domain.SystemLog) error
}

// Notifier интерфейс для оповещения подключенных клиентов об изменениях
type Notifier interface {
	PublishRefetch(reason string, views ...string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
