package complete_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	appointmentRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/appointment"
	delinquentRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/delinquent"
)

// UseCase use case завершения записи с расчетом
type UseCase struct {
	appointmentRepo AppointmentRepository
	paymentRepo     PaymentRepository
	delinquentRepo  DelinquentRepository
	systemLogRepo   SystemLogRepository
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	paymentRepo PaymentRepository,
	delinquentRepo DelinquentRepository,
	systemLogRepo SystemLogRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		paymentRepo:     paymentRepo,
		delinquentRepo:  delinquentRepo,
		systemLogRepo:   systemLogRepo,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute завершает запись с расчетом. Оплата фиксирует нетто-выручку по
// таблице комиссий; nao_pago завершает запись без выручки и создает
// запись о долге. Статус, оплата, платеж и долг меняются одной транзакцией.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompleteAppointment: completing appointment id=%d method=%s", req.ID, req.Method)

	// 1. Валидация входных данных
	if req.ID <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	method := domain.PaymentMethod(req.Method)
	if !method.IsValid() {
		uc.logger.Warn("CompleteAppointment: invalid payment method=%s", req.Method)
		return nil, ErrInvalidPaymentMethod
	}
	if req.Amount != nil && *req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	var (
		result      *domain.Appointment
		netValue    float64
		appliedFee  float64
		debtCreated bool
	)

	// 2. Завершение, расчет и долг в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Текущее состояние записи
		apt, err := uc.appointmentRepo.GetByID(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CompleteAppointment: failed to get appointment id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		if apt.Status == domain.StatusCancelled {
			return ErrCancelled
		}
		if apt.IsCompleted() && apt.PaymentStatus != domain.PaymentPending {
			return ErrAlreadyCompleted
		}

		// 2.2. Сумма расчета: явная или цена записи
		amount := apt.Price
		if req.Amount != nil {
			amount = *req.Amount
		}

		// 2.3. Переводим запись в concluido
		if err := uc.appointmentRepo.UpdateStatus(txCtx, apt.ID, domain.StatusCompleted); err != nil {
			uc.logger.Error("CompleteAppointment: failed to update status id=%d: %v", apt.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}
		apt.Status = domain.StatusCompleted

		now := uc.timeProvider.Now()

		if method == domain.MethodUnpaid {
			// 2.4а. Без оплаты: нулевая выручка и запись о долге
			netValue = 0
			appliedFee = 0
			apt.PaymentStatus = domain.PaymentUnpaid

			if err := uc.appointmentRepo.SetPayment(txCtx, apt.ID,
				domain.PaymentUnpaid, method, 0, 0, 0); err != nil {
				return fmt.Errorf("%w: failed to set payment: %v", ErrInternal, err)
			}

			// Повторный расчет nao_pago не плодит дубликаты долга
			existing, err := uc.delinquentRepo.GetByAppointmentID(txCtx, apt.ID)
			if err != nil && !errors.Is(err, delinquentRepo.ErrDelinquentNotFound) {
				return fmt.Errorf("%w: failed to check delinquent: %v", ErrInternal, err)
			}

			if existing == nil {
				serviceDate := apt.Date
				debt := &domain.Delinquent{
					AppointmentID:   &apt.ID,
					ClientID:        apt.ClientID,
					ClientName:      apt.ClientName,
					Phone:           apt.Phone,
					ServiceName:     apt.ServiceName,
					AmountOwed:      amount,
					AmountRemaining: amount,
					Status:          domain.DelinquencyPending,
					ServiceDate:     &serviceDate,
				}
				debt.DaysOverdue = debt.ComputeDaysOverdue(now)

				if _, err := uc.delinquentRepo.Create(txCtx, debt); err != nil {
					return fmt.Errorf("%w: failed to create delinquent: %v", ErrInternal, err)
				}
				debtCreated = true

				if err := uc.systemLogRepo.Create(txCtx, &domain.SystemLog{
					Type:    domain.LogDelinquentCreated,
					Origin:  "sistema",
					Message: fmt.Sprintf("Inadimplente criado para agendamento #%d: %s (R$ %.2f)", apt.ID, apt.ClientName, amount),
					Details: map[string]interface{}{
						"appointmentId": apt.ID,
						"amountOwed":    amount,
					},
				}); err != nil {
					return fmt.Errorf("%w: failed to create system log: %v", ErrInternal, err)
				}
			}
		} else {
			// 2.4б. Оплата: нетто по таблице комиссий и платеж в истории
			netValue = domain.NetValue(amount, method)
			appliedFee = domain.FeePercent(method)
			apt.PaymentStatus = domain.PaymentPaid
			apt.PaidAmount = amount

			if err := uc.appointmentRepo.SetPayment(txCtx, apt.ID,
				domain.PaymentPaid, method, amount, netValue, appliedFee); err != nil {
				return fmt.Errorf("%w: failed to set payment: %v", ErrInternal, err)
			}

			if _, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
				AppointmentID: &apt.ID,
				ClientID:      apt.ClientID,
				Amount:        amount,
				Method:        method,
				Status:        domain.PaymentPaid,
				PaidAt:        now,
			}); err != nil {
				return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
			}
		}

		result = apt
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAppointmentNotFound) ||
			errors.Is(err, ErrAlreadyCompleted) ||
			errors.Is(err, ErrCancelled) {
			uc.logger.Warn("CompleteAppointment: rejected for id=%d: %v", req.ID, err)
			return nil, err
		}
		return nil, err
	}

	views := []string{"agenda", "agendamentos", "dashboard"}
	if debtCreated {
		views = append(views, "inadimplentes")
	}
	uc.notifier.PublishRefetch("appointment_completed", views...)

	uc.logger.Info("CompleteAppointment: appointment id=%d completed, method=%s net=%.2f debt=%v",
		req.ID, method, netValue, debtCreated)
	return toResponse(result, method, netValue, appliedFee, debtCreated), nil
}
