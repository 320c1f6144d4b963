package get_schedule

import (
	"context"
	"fmt"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

// UseCase use case построения сетки доступности на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	schedule        domain.WeekSchedule
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(repo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: repo,
		schedule:        domain.DefaultWeekSchedule(),
		logger:          logger,
	}
}

// Execute строит сетку доступности: рабочие окна дня, разбитые на
// 15-минутные слоты, с пометками занятости и сводной статистикой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	uc.logger.Info("GetSchedule: building grid for date=%s", req.Date.Format(domain.DateFormat))

	// 2. Активные записи даты
	appointments, err := uc.appointmentRepo.ListWithFilter(ctx, domain.AppointmentsFilter{
		Date:             &req.Date,
		ExcludeCancelled: true,
	})
	if err != nil {
		uc.logger.Error("GetSchedule: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 3. Сетка по рабочим часам
	grid, err := domain.BuildDayGrid(req.Date, uc.schedule, appointments)
	if err != nil {
		uc.logger.Error("GetSchedule: failed to build grid: %v", err)
		return nil, fmt.Errorf("%w: failed to build grid: %v", ErrInternal, err)
	}

	uc.logger.Info("GetSchedule: date=%s occupied=%d/%d",
		req.Date.Format(domain.DateFormat), grid.OccupiedSlots, grid.TotalSlots)
	return toResponse(grid), nil
}
