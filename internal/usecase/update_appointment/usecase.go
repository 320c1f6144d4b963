package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	appointmentRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/appointment"
)

// UseCase use case изменения записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	notifier        Notifier
	txManager       TransactionManager
	conflicts       ConflictCounter
	schedule        domain.WeekSchedule
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	repo AppointmentRepository,
	notifier Notifier,
	txManager TransactionManager,
	conflicts ConflictCounter,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: repo,
		notifier:        notifier,
		txManager:       txManager,
		conflicts:       conflicts,
		schedule:        domain.DefaultWeekSchedule(),
		logger:          logger,
	}
}

// Execute выполняет use case изменения записи.
// Перенос на другой слот проверяется на пересечения в сериализуемой
// транзакции; сама запись исключается из проверки по id.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: updating appointment id=%d", req.ID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 2. Читаем, применяем изменения и сохраняем в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Текущее состояние записи
		apt, err := uc.appointmentRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Применяем изменения
		slotChanged := applyChanges(apt, req)

		// 2.3. Выходной день - переносить некуда
		if slotChanged && uc.schedule.IsClosed(apt.Date) {
			uc.logger.Warn("UpdateAppointment: closed on %s", apt.Date.Format(domain.DateFormat))
			return ErrDayClosed
		}

		if !apt.StartTime.IsBefore(apt.EndOrDefault()) {
			return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidTimeRange)
		}

		// 2.4. Перенесенный слот проверяем на пересечения (FOR UPDATE)
		if slotChanged && apt.IsActive() {
			existing, err := uc.appointmentRepo.ListWithFilter(txCtx, domain.AppointmentsFilter{
				Date:             &apt.Date,
				ExcludeCancelled: true,
			})
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to list appointments: %v", err)
				return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
			}

			if conflict := domain.FindConflict(apt.StartTime, apt.EndOrDefault(), existing, &apt.ID); conflict.Conflict {
				uc.conflicts.Inc()
				uc.logger.Warn("UpdateAppointment: slot %s-%s conflicts with appointment id=%d",
					apt.StartTime, apt.EndOrDefault(), conflict.ConflictWith.ID)
				return ErrSlotConflict
			}
		}

		// 2.5. Сохраняем
		if err := uc.appointmentRepo.Update(txCtx, apt); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		result = apt
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.PublishRefetch("appointment_updated", "agenda", "agendamentos", "dashboard")

	uc.logger.Info("UpdateAppointment: successfully updated appointment id=%d", req.ID)
	return toResponse(result), nil
}

// applyChanges накладывает непустые поля запроса на запись.
// Возвращает true, когда изменились дата или время.
func applyChanges(apt *domain.Appointment, req *Request) bool {
	slotChanged := false

	if req.Date != nil {
		d := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
		if !d.Equal(apt.Date) {
			apt.Date = d
			slotChanged = true
		}
	}
	if req.StartTime != nil && *req.StartTime != apt.StartTime {
		apt.StartTime = *req.StartTime
		slotChanged = true
	}
	if req.EndTime != nil && *req.EndTime != apt.EndTime {
		apt.EndTime = *req.EndTime
		slotChanged = true
	}
	if req.Status != nil {
		newStatus := domain.AppointmentStatus(*req.Status)
		// Возврат отмененной записи в активный статус занимает слот заново
		if !apt.IsActive() && newStatus != domain.StatusCancelled {
			slotChanged = true
		}
		apt.Status = newStatus
	}
	if req.ClientName != nil {
		apt.ClientName = strings.TrimSpace(*req.ClientName)
	}
	if req.Price != nil {
		apt.Price = *req.Price
	}
	if req.Notes != nil {
		apt.Notes = req.Notes
	}

	return slotChanged
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}

	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
	}
	if req.EndTime != nil && !req.EndTime.IsZero() {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
	}

	if req.Status != nil {
		switch domain.AppointmentStatus(*req.Status) {
		case domain.StatusScheduled, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled:
		default:
			return fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
	}

	if req.ClientName != nil && len(strings.TrimSpace(*req.ClientName)) < domain.MinClientNameLength {
		return fmt.Errorf("%w: client name must have at least %d characters", ErrInvalidInput, domain.MinClientNameLength)
	}

	if req.Price != nil && *req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	return nil
}
