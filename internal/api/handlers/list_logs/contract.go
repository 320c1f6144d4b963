package list_logs

import (
	"context"

	"github.com/barbearia-jao/agenda-service/internal/service/syslogs/models"
)

type SystemLogsService interface {
	List(ctx context.Context, limit int) (*models.SystemLogListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
