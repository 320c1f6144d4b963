package catalog

import (
	"context"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Cache интерфейс кеша справочников
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, val interface{}, ttl time.Duration) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
