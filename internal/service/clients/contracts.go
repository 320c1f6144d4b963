package clients

import (
	"context"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
}

// Cache интерфейс кеша справочников
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, val interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
