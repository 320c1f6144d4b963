package list_delinquents

import (
	"context"

	"github.com/barbearia-jao/agenda-service/internal/service/delinquents/models"
)

type DelinquentsService interface {
	List(ctx context.Context, status *string) (*models.DelinquentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
