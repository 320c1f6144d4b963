package settle_delinquent

import (
	"context"

	"github.com/barbearia-jao/agenda-service/internal/service/delinquents/models"
)

type DelinquentsService interface {
	Settle(ctx context.Context, id int64, req *models.SettleDelinquentRequest) (*models.DelinquentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
