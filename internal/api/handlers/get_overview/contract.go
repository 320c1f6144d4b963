package get_overview

import (
	"context"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/service/appointments/models"
)

type AppointmentsService interface {
	Overview(ctx context.Context, startDate, endDate time.Time) (*models.OverviewResponse, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
