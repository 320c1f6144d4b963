package get_schedule

import (
	"context"

	getSchedule "github.com/barbearia-jao/agenda-service/internal/usecase/get_schedule"
)

type GetScheduleUseCase interface {
	Execute(ctx context.Context, req *getSchedule.Request) (*getSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
