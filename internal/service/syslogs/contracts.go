package syslogs

import (
	"context"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

// SystemLogRepository интерфейс журнала системных событий
type SystemLogRepository interface {
	List(ctx context.Context, limit uint64) ([]*domain.SystemLog, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
