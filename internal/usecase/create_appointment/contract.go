package create_appointment

import (
	"context"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// ClientResolver находит или создает карточку клиента по телефону
type ClientResolver interface {
	FindOrCreate(ctx context.Context, name, rawPhone string) (*domain.Client, error)
}

// CatalogService интерфейс каталога услуг
type CatalogService interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// DelinquentRepository интерфейс репозитория неплательщиков
type DelinquentRepository interface {
	Create(ctx context.Context, d *domain.Delinquent) (*domain.Delinquent, error)
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
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ConflictCounter метрика отклоненных из-за занятого слота записей
type ConflictCounter interface {
	Inc()
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
