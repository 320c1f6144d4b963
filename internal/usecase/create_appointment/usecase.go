package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	catalogSvc "github.com/barbearia-jao/agenda-service/internal/service/catalog"
)

// UseCase use case создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	clients         ClientResolver
	catalog         CatalogService
	delinquentRepo  DelinquentRepository
	systemLogRepo   SystemLogRepository
	notifier        Notifier
	txManager       TransactionManager
	conflicts       ConflictCounter
	schedule        domain.WeekSchedule
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	clients ClientResolver,
	catalog CatalogService,
	delinquentRepo DelinquentRepository,
	systemLogRepo SystemLogRepository,
	notifier Notifier,
	txManager TransactionManager,
	conflicts ConflictCounter,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		clients:         clients,
		catalog:         catalog,
		delinquentRepo:  delinquentRepo,
		systemLogRepo:   systemLogRepo,
		notifier:        notifier,
		txManager:       txManager,
		conflicts:       conflicts,
		schedule:        domain.DefaultWeekSchedule(),
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка занятости слота и вставка идут в одной сериализуемой транзакции:
// две одновременные попытки занять один слот не могут пройти обе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%s, date=%s, time=%s",
		req.ClientName, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Выходной день - записи нет
	if uc.schedule.IsClosed(req.Date) {
		uc.logger.Warn("CreateAppointment: closed on %s", req.Date.Format(domain.DateFormat))
		return nil, ErrDayClosed
	}

	// 3. Резолвим услугу каталога
	var service *domain.Service
	if req.ServiceID != nil {
		svc, err := uc.catalog.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogSvc.ErrServiceNotFound) {
				uc.logger.Warn("CreateAppointment: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		service = svc
	}

	// 4. Время окончания: явное, либо длительность услуги, либо 30 минут
	endTime := req.EndTime
	if endTime.IsZero() {
		duration := domain.DefaultDurationMinutes
		if service != nil && service.DurationMinutes > 0 {
			duration = service.DurationMinutes
		}
		end, err := req.StartTime.AddMinutes(duration)
		if err != nil {
			uc.logger.Warn("CreateAppointment: cannot derive end time: %v", err)
			return nil, fmt.Errorf("%w: cannot derive end time: %v", ErrInvalidTimeRange, err)
		}
		endTime = end
	}

	// 5. Находим или создаем карточку клиента по телефону
	var client *domain.Client
	if req.Phone != "" {
		c, err := uc.clients.FindOrCreate(ctx, req.ClientName, req.Phone)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to resolve client: %v", err)
			return nil, fmt.Errorf("%w: failed to resolve client: %v", ErrInvalidInput, err)
		}
		client = c
	}

	// 6. Собираем запись
	apt := &domain.Appointment{
		Date:          dateOnly(req.Date),
		StartTime:     req.StartTime,
		EndTime:       endTime,
		Status:        domain.StatusScheduled,
		ClientName:    strings.TrimSpace(req.ClientName),
		PaymentStatus: domain.PaymentPending,
		Notes:         req.Notes,
	}
	if req.Status != "" {
		apt.Status = domain.AppointmentStatus(req.Status)
	}
	if client != nil {
		apt.ClientID = &client.ID
		apt.Phone = client.Phone
	}
	if service != nil {
		apt.ServiceID = &service.ID
		apt.ServiceName = service.Name
		apt.Price = service.BasePrice
	}
	if req.Price != nil {
		apt.Price = *req.Price
	}
	// Цена из каталога тоже должна быть положительной
	if apt.Price <= 0 {
		uc.logger.Warn("CreateAppointment: non-positive price %.2f", apt.Price)
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	// 7. Ретроактивная регистрация: запись сразу создается завершенной и
	// оплаченной (или неоплаченной, тогда клиент попадает в должники)
	var createDebt bool
	if apt.Status == domain.StatusCompleted && req.PaymentMethod != nil {
		method := domain.PaymentMethod(*req.PaymentMethod)
		if !method.IsValid() {
			uc.logger.Warn("CreateAppointment: invalid payment method=%s", *req.PaymentMethod)
			return nil, ErrInvalidPaymentMethod
		}

		apt.PaymentMethod = &method
		if method == domain.MethodUnpaid {
			apt.PaymentStatus = domain.PaymentUnpaid
			net := 0.0
			apt.NetValue = &net
			createDebt = true
		} else {
			apt.PaymentStatus = domain.PaymentPaid
			apt.PaidAmount = apt.Price
			net := domain.NetValue(apt.Price, method)
			fee := domain.FeePercent(method)
			apt.NetValue = &net
			apt.AppliedFee = &fee
		}
	}

	// 8. Критическая секция бронирования
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Активные записи дня с блокировкой (FOR UPDATE)
		existing, err := uc.appointmentRepo.ListWithFilter(txCtx, domain.AppointmentsFilter{
			Date:             &apt.Date,
			ExcludeCancelled: true,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		// 8.2. Проверяем пересечение слотов
		if result := domain.FindConflict(apt.StartTime, apt.EndTime, existing, nil); result.Conflict {
			uc.conflicts.Inc()
			uc.logger.Warn("CreateAppointment: slot %s-%s conflicts with appointment id=%d",
				apt.StartTime, apt.EndTime, result.ConflictWith.ID)
			return ErrSlotConflict
		}

		// 8.3. Сохраняем запись
		if _, err := uc.appointmentRepo.Create(txCtx, apt); err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 8.4. Завершение без оплаты порождает запись о долге
		if createDebt {
			serviceDate := apt.Date
			debt := &domain.Delinquent{
				AppointmentID:   &apt.ID,
				ClientID:        apt.ClientID,
				ClientName:      apt.ClientName,
				Phone:           apt.Phone,
				ServiceName:     apt.ServiceName,
				AmountOwed:      apt.Price,
				AmountRemaining: apt.Price,
				Status:          domain.DelinquencyPending,
				ServiceDate:     &serviceDate,
			}
			debt.DaysOverdue = debt.ComputeDaysOverdue(uc.timeProvider.Now())

			if _, err := uc.delinquentRepo.Create(txCtx, debt); err != nil {
				return fmt.Errorf("%w: failed to create delinquent: %v", ErrInternal, err)
			}

			if err := uc.systemLogRepo.Create(txCtx, &domain.SystemLog{
				Type:    domain.LogDelinquentCreated,
				Origin:  "sistema",
				Message: fmt.Sprintf("Inadimplente criado para agendamento #%d: %s (R$ %.2f)", apt.ID, apt.ClientName, apt.Price),
				Details: map[string]interface{}{
					"appointmentId": apt.ID,
					"amountOwed":    apt.Price,
				},
			}); err != nil {
				return fmt.Errorf("%w: failed to create system log: %v", ErrInternal, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	views := []string{"agenda", "agendamentos", "dashboard"}
	if createDebt {
		views = append(views, "inadimplentes")
	}
	uc.notifier.PublishRefetch("appointment_created", views...)

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", apt.ID)
	return toResponse(apt), nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
