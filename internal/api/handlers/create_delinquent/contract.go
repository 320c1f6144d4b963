package create_delinquent

import (
	"context"

	"github.com/barbearia-jao/agenda-service/internal/service/delinquents/models"
)

type DelinquentsService interface {
	CreateManual(ctx context.Context, req *models.CreateDelinquentRequest) (*models.DelinquentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
