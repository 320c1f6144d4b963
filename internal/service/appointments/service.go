package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	appointmentRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/appointment"
	"github.com/barbearia-jao/agenda-service/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	paymentRepo     PaymentRepository
	whatsapp        WhatsAppLinker
	notifier        Notifier
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	paymentRepo PaymentRepository,
	whatsapp WhatsAppLinker,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		paymentRepo:     paymentRepo,
		whatsapp:        whatsapp,
		notifier:        notifier,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	apt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainAppointment(apt)

	// Кнопка напоминания в карточке записи: только для предстоящих
	if apt.Phone != "" && (apt.Status == domain.StatusScheduled || apt.Status == domain.StatusConfirmed) {
		resp.WhatsAppLink = s.whatsapp.ReminderLink(
			apt.Phone, apt.ClientName, apt.Date.Format("02/01"), apt.StartTime.String())
	}

	return resp, nil
}

// List получает записи с фильтрацией по дате, периоду и статусу
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments, date=%v period=[%v, %v] status=%v",
		req.Date, req.StartDate, req.EndDate, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// Delete удаляет запись. Освобожденные слоты сразу видны в агенде.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting appointment id=%d", id)

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.notifier.PublishRefetch("appointment_deleted", "agenda", "agendamentos", "dashboard")

	s.logger.Info("Delete: successfully deleted appointment id=%d", id)
	return nil
}

// Overview собирает сводку за период: счетчики по статусам, брутто/нетто
// выручка, сумма комиссий и долги. Нетто считается по зафиксированным в
// записи значениям, а не пересчитывается заново. Обе выборки читаются в
// одной read-only транзакции, чтобы сводка была согласованной.
func (s *Service) Overview(ctx context.Context, startDate, endDate time.Time) (*models.OverviewResponse, error) {
	s.logger.Info("Overview: building overview for period=[%s, %s]",
		startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat))

	resp := &models.OverviewResponse{
		StartDate:       startDate.Format(domain.DateFormat),
		EndDate:         endDate.Format(domain.DateFormat),
		RevenueByMethod: make(map[string]float64),
	}

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		appointments, err := s.appointmentRepo.ListWithFilter(txCtx, domain.AppointmentsFilter{
			StartDate: &startDate,
			EndDate:   &endDate,
		})
		if err != nil {
			s.logger.Error("Overview: repository error: %v", err)
			return fmt.Errorf("%w: Overview - repository error: %v", ErrInternal, err)
		}

		for _, apt := range appointments {
			switch apt.Status {
			case domain.StatusCompleted:
				resp.TotalCompleted++
			case domain.StatusCancelled:
				resp.TotalCancelled++
				continue
			default:
				resp.TotalScheduled++
				continue
			}

			switch apt.PaymentStatus {
			case domain.PaymentPaid:
				resp.GrossRevenue += apt.PaidAmount
				if apt.NetValue != nil {
					resp.NetRevenue += *apt.NetValue
					resp.TotalFees += apt.PaidAmount - *apt.NetValue
				}
				if apt.PaymentMethod != nil {
					resp.RevenueByMethod[string(*apt.PaymentMethod)] += apt.PaidAmount
				}
			case domain.PaymentUnpaid:
				resp.UnpaidAmount += apt.Price
			}
		}

		payments, err := s.paymentRepo.ListByPeriod(txCtx, startDate, endDate.AddDate(0, 0, 1))
		if err != nil {
			s.logger.Error("Overview: payments repository error: %v", err)
			return fmt.Errorf("%w: Overview - payments repository error: %v", ErrInternal, err)
		}
		resp.PaymentsRecorded = len(payments)

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Overview: period=[%s, %s] completed=%d gross=%.2f net=%.2f",
		resp.StartDate, resp.EndDate, resp.TotalCompleted, resp.GrossRevenue, resp.NetRevenue)
	return resp, nil
}
