package appointments

import (
	"context"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Payment, error)
}

// Notifier интерфейс для оповещения подключенных клиентов об изменениях
type Notifier interface {
	PublishRefetch(reason string, views ...string)
}

// WhatsAppLinker строит deep-link'и для переписки с клиентом
type WhatsAppLinker interface {
	ReminderLink(phone, clientName, date, startTime string) string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
