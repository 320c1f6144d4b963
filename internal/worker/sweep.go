// Package worker содержит фоновую задачу автозавершения записей: агендамент,
// чье время окончания прошло, переводится из agendado/confirmado в concluido
// без участия администратора.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListExpired(ctx context.Context, now time.Time) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// SystemLogRepository интерфейс журнала системных событий
type SystemLogRepository interface {
	Create(ctx context.Context, entry *domain.SystemLog) error
}

// Notifier интерфейс для оповещения подключенных клиентов об изменениях
type Notifier interface {
	PublishRefetch(reason string, views ...string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper фоновая задача автозавершения
type Sweeper struct {
	appointmentRepo AppointmentRepository
	systemLogRepo   SystemLogRepository
	notifier        Notifier
	timeProvider    TimeProvider
	promotions      prometheus.Counter
	logger          Logger

	cron    *cron.Cron
	entryID cron.EntryID
}

// NewSweeper создает фоновую задачу автозавершения
func NewSweeper(
	appointmentRepo AppointmentRepository,
	systemLogRepo SystemLogRepository,
	notifier Notifier,
	timeProvider TimeProvider,
	promotions prometheus.Counter,
	logger Logger,
) *Sweeper {
	return &Sweeper{
		appointmentRepo: appointmentRepo,
		systemLogRepo:   systemLogRepo,
		notifier:        notifier,
		timeProvider:    timeProvider,
		promotions:      promotions,
		logger:          logger,
		cron:            cron.New(),
	}
}

// Start запускает задачу с заданным интервалом
func (s *Sweeper) Start(intervalMinutes int) error {
	spec := fmt.Sprintf("@every %dm", intervalMinutes)
	entryID, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("worker: failed to schedule sweep: %w", err)
	}

	s.entryID = entryID
	s.cron.Start()
	s.logger.Info("worker: auto-complete sweep scheduled every %d minutes", intervalMinutes)
	return nil
}

// Stop останавливает планировщик, дожидаясь текущего запуска
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("worker: auto-complete sweep stopped")
}

// RunOnce один проход: завершает все записи, чье время окончания прошло.
// Пропуск одного запуска не страшен - следующий подберет тех же кандидатов.
func (s *Sweeper) RunOnce(ctx context.Context) {
	now := s.timeProvider.Now()

	candidates, err := s.appointmentRepo.ListExpired(ctx, now)
	if err != nil {
		s.logger.Error("worker: failed to list expired appointments: %v", err)
		return
	}

	promoted := 0
	for _, apt := range candidates {
		if apt.EndDateTime().After(now) {
			continue
		}

		if err := s.appointmentRepo.UpdateStatus(ctx, apt.ID, domain.StatusCompleted); err != nil {
			s.logger.Error("worker: failed to complete appointment id=%d: %v", apt.ID, err)
			continue
		}

		if err := s.systemLogRepo.Create(ctx, &domain.SystemLog{
			Type:    domain.LogAppointmentSwept,
			Origin:  "sistema",
			Message: fmt.Sprintf("Agendamento #%d concluído automaticamente", apt.ID),
			Details: map[string]interface{}{
				"appointmentId": apt.ID,
				"date":          apt.Date.Format(domain.DateFormat),
				"startTime":     apt.StartTime.String(),
			},
		}); err != nil {
			s.logger.Warn("worker: failed to log auto-completion of appointment id=%d: %v", apt.ID, err)
		}

		s.promotions.Inc()
		promoted++
	}

	if promoted > 0 {
		s.notifier.PublishRefetch("appointments_auto_completed", "agenda", "agendamentos", "dashboard")
		s.logger.Info("worker: auto-completed %d appointments", promoted)
	}
}
