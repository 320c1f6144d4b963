package delinquents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	delinquentRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/delinquent"
	"github.com/barbearia-jao/agenda-service/internal/service/delinquents/models"
	"github.com/barbearia-jao/agenda-service/pkg/phone"
)

// Service сервис учета неплательщиков
type Service struct {
	delinquentRepo  DelinquentRepository
	appointmentRepo AppointmentRepository
	paymentRepo     PaymentRepository
	systemLogRepo   SystemLogRepository
	whatsapp        WhatsAppLinker
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса неплательщиков
func NewService(
	delinquentRepo DelinquentRepository,
	appointmentRepo AppointmentRepository,
	paymentRepo PaymentRepository,
	systemLogRepo SystemLogRepository,
	whatsapp WhatsAppLinker,
	notifier Notifier,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		delinquentRepo:  delinquentRepo,
		appointmentRepo: appointmentRepo,
		paymentRepo:     paymentRepo,
		systemLogRepo:   systemLogRepo,
		whatsapp:        whatsapp,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// List получает записи о долгах с актуализированной просрочкой.
// Просрочка пересчитывается от даты привязанного агендамента; изменившиеся
// значения сохраняются, чтобы выборка без пересчета тоже была свежей.
func (s *Service) List(ctx context.Context, status *string) (*models.DelinquentListResponse, error) {
	s.logger.Info("List: fetching delinquents, status=%v", status)

	var domainStatus *domain.DelinquencyStatus
	if status != nil {
		ds := domain.DelinquencyStatus(*status)
		if ds != domain.DelinquencyPending && ds != domain.DelinquencySettled {
			s.logger.Warn("List: invalid status=%s", *status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &ds
	}

	delinquents, err := s.delinquentRepo.List(ctx, domainStatus)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	for _, d := range delinquents {
		if d.IsSettled() {
			continue
		}
		days := d.ComputeDaysOverdue(now)
		if days == d.DaysOverdue {
			continue
		}
		d.DaysOverdue = days
		if err := s.delinquentRepo.UpdateDaysOverdue(ctx, d.ID, days); err != nil {
			// Несохраненная просрочка не мешает отдать список
			s.logger.Warn("List: failed to persist days overdue for delinquent id=%d: %v", d.ID, err)
		}
	}

	s.logger.Info("List: successfully fetched %d delinquents", len(delinquents))
	return models.FromDomainDelinquentList(delinquents), nil
}

// CreateManual создает запись о долге вручную, без привязки к агендаменту
func (s *Service) CreateManual(ctx context.Context, req *models.CreateDelinquentRequest) (*models.DelinquentResponse, error) {
	s.logger.Info("CreateManual: creating delinquent for client=%s amount=%.2f", req.ClientName, req.AmountOwed)

	if strings.TrimSpace(req.ClientName) == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if req.AmountOwed <= 0 {
		return nil, fmt.Errorf("%w: amount owed must be positive", ErrInvalidAmount)
	}

	normalizedPhone := phone.Normalize(req.Phone)

	d := &domain.Delinquent{
		ClientName:      strings.TrimSpace(req.ClientName),
		Phone:           normalizedPhone,
		ServiceName:     req.ServiceName,
		AmountOwed:      req.AmountOwed,
		AmountRemaining: req.AmountOwed,
		DueDate:         req.DueDate,
		Status:          domain.DelinquencyPending,
		Notes:           req.Notes,
	}
	d.DaysOverdue = d.ComputeDaysOverdue(s.timeProvider.Now())

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.delinquentRepo.Create(ctx, d); err != nil {
			return fmt.Errorf("create delinquent: %w", err)
		}

		return s.systemLogRepo.Create(ctx, &domain.SystemLog{
			Type:    domain.LogDelinquentCreated,
			Origin:  "admin",
			Message: fmt.Sprintf("Inadimplente registrado manualmente: %s (R$ %.2f)", d.ClientName, d.AmountOwed),
			Details: map[string]interface{}{
				"delinquentId": d.ID,
				"amountOwed":   d.AmountOwed,
			},
		})
	})
	if err != nil {
		s.logger.Error("CreateManual: transaction error: %v", err)
		return nil, fmt.Errorf("%w: CreateManual - transaction error: %v", ErrInternal, err)
	}

	s.notifier.PublishRefetch("delinquent_created", "inadimplentes", "dashboard")

	s.logger.Info("CreateManual: successfully created delinquent id=%d", d.ID)
	return models.FromDomainDelinquent(d), nil
}

// Settle регистрирует оплату долга. Частичная оплата уменьшает остаток;
// полная закрывает запись, проставляет оплату в привязанном агендаменте и
// пишет событие в журнал. Всё в одной транзакции.
func (s *Service) Settle(ctx context.Context, id int64, req *models.SettleDelinquentRequest) (*models.DelinquentResponse, error) {
	s.logger.Info("Settle: settling delinquent id=%d amount=%.2f method=%s", id, req.Amount, req.Method)

	method := domain.PaymentMethod(req.Method)
	if !method.IsValid() || method == domain.MethodUnpaid {
		s.logger.Warn("Settle: invalid payment method=%s for delinquent id=%d", req.Method, id)
		return nil, fmt.Errorf("%w: invalid payment method", ErrInvalidInput)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrInvalidAmount)
	}

	var result *domain.Delinquent

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		d, err := s.delinquentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if d.IsSettled() {
			return ErrAlreadySettled
		}
		if req.Amount > d.AmountRemaining {
			return fmt.Errorf("%w: amount %.2f exceeds remaining %.2f", ErrInvalidAmount, req.Amount, d.AmountRemaining)
		}

		d.AmountPaid += req.Amount
		d.AmountRemaining -= req.Amount
		if d.AmountRemaining == 0 {
			d.Status = domain.DelinquencySettled
		}

		if err := s.delinquentRepo.Settle(ctx, d.ID, d.AmountPaid, d.AmountRemaining, d.Status); err != nil {
			return fmt.Errorf("settle delinquent: %w", err)
		}

		now := s.timeProvider.Now()

		if _, err := s.paymentRepo.Create(ctx, &domain.Payment{
			AppointmentID: d.AppointmentID,
			ClientID:      d.ClientID,
			Amount:        req.Amount,
			Method:        method,
			Status:        domain.PaymentPaid,
			PaidAt:        now,
		}); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		// При полном погашении долга агендамент перестает числиться как nao_pago
		if d.IsSettled() && d.AppointmentID != nil {
			netValue := domain.NetValue(d.AmountPaid, method)
			if err := s.appointmentRepo.SetPayment(ctx, *d.AppointmentID,
				domain.PaymentPaid, method, d.AmountPaid, netValue, domain.FeePercent(method)); err != nil {
				return fmt.Errorf("update appointment payment: %w", err)
			}
		}

		if d.IsSettled() {
			if err := s.systemLogRepo.Create(ctx, &domain.SystemLog{
				Type:    domain.LogDelinquentSettled,
				Origin:  "admin",
				Message: fmt.Sprintf("Inadimplente quitado: %s (R$ %.2f)", d.ClientName, d.AmountPaid),
				Details: map[string]interface{}{
					"delinquentId": d.ID,
					"amountPaid":   d.AmountPaid,
					"method":       string(method),
				},
			}); err != nil {
				return fmt.Errorf("create system log: %w", err)
			}
		}

		result = d
		return nil
	})
	if err != nil {
		if errors.Is(err, delinquentRepo.ErrDelinquentNotFound) {
			s.logger.Warn("Settle: delinquent id=%d not found", id)
			return nil, ErrDelinquentNotFound
		}
		if errors.Is(err, ErrAlreadySettled) || errors.Is(err, ErrInvalidAmount) {
			s.logger.Warn("Settle: rejected for delinquent id=%d: %v", id, err)
			return nil, err
		}
		s.logger.Error("Settle: transaction error for delinquent id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Settle - transaction error: %v", ErrInternal, err)
	}

	s.notifier.PublishRefetch("delinquent_settled", "inadimplentes", "agendamentos", "dashboard")

	s.logger.Info("Settle: delinquent id=%d settled, remaining=%.2f status=%s",
		id, result.AmountRemaining, result.Status)
	return models.FromDomainDelinquent(result), nil
}

// RegisterContact фиксирует попытку связаться с должником и возвращает
// готовую ссылку wa.me с шаблоном сообщения о задолженности
func (s *Service) RegisterContact(ctx context.Context, id int64) (*models.ContactResponse, error) {
	s.logger.Info("RegisterContact: registering contact attempt for delinquent id=%d", id)

	d, err := s.delinquentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, delinquentRepo.ErrDelinquentNotFound) {
			s.logger.Warn("RegisterContact: delinquent id=%d not found", id)
			return nil, ErrDelinquentNotFound
		}
		s.logger.Error("RegisterContact: repository error for delinquent id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: RegisterContact - repository error: %v", ErrInternal, err)
	}

	if err := s.delinquentRepo.RegisterContact(ctx, id); err != nil {
		s.logger.Error("RegisterContact: failed to register contact for delinquent id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: RegisterContact - repository error: %v", ErrInternal, err)
	}

	s.notifier.PublishRefetch("delinquent_contacted", "inadimplentes")

	s.logger.Info("RegisterContact: contact registered for delinquent id=%d, attempts=%d", id, d.ContactAttempts+1)
	return &models.ContactResponse{
		ID:              d.ID,
		ContactAttempts: d.ContactAttempts + 1,
		WhatsAppLink:    s.whatsapp.ChargeLink(d.Phone, d.ClientName),
	}, nil
}
