package contact_delinquent

import (
	"context"

	"github.com/barbearia-jao/agenda-service/internal/service/delinquents/models"
)

type DelinquentsService interface {
	RegisterContact(ctx context.Context, id int64) (*models.ContactResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
