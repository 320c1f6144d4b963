package update_appointment

import (
	"context"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Update(ctx context.Context, apt *domain.Appointment) error
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// Notifier интерфейс для оповещения подключенных клиентов об изменениях
type Notifier interface {
	PublishRefetch(reason string, views ...string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ConflictCounter метрика отклоненных из-за занятого слота изменений
type ConflictCounter interface {
	Inc()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
