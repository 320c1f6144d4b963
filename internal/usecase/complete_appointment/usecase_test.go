package complete_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	appointmentRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/appointment"
	delinquentRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/delinquent"
	"github.com/barbearia-jao/agenda-service/pkg/ptr"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAppointmentRepository) SetPayment(ctx context.Context, id int64, paymentStatus domain.PaymentStatus, method domain.PaymentMethod, paidAmount, netValue, appliedFee float64) error {
	args := m.Called(ctx, id, paymentStatus, method, paidAmount, netValue, appliedFee)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type MockDelinquentRepository struct {
	mock.Mock
}

func (m *MockDelinquentRepository) Create(ctx context.Context, d *domain.Delinquent) (*domain.Delinquent, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delinquent), args.Error(1)
}

func (m *MockDelinquentRepository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Delinquent, error) {
	args := m.Called(ctx, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Delinquent), args.Error(1)
}

type MockSystemLogRepository struct {
	mock.Mock
}

func (m *MockSystemLogRepository) Create(ctx context.Context, entry *domain.SystemLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishRefetch(reason string, views ...string) {
	m.Called(reason, views)
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var now = time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC)

func pending() *domain.Appointment {
	return &domain.Appointment{
		ID:            5,
		Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "10:30",
		Status:        domain.StatusConfirmed,
		ClientName:    "Carlos Silva",
		ServiceName:   "Corte",
		Price:         50,
		PaymentStatus: domain.PaymentPending,
	}
}

type fixture struct {
	uc          *UseCase
	repo        *MockAppointmentRepository
	payments    *MockPaymentRepository
	delinquents *MockDelinquentRepository
	logs        *MockSystemLogRepository
	notifier    *MockNotifier
}

func newFixture() *fixture {
	f := &fixture{
		repo:        new(MockAppointmentRepository),
		payments:    new(MockPaymentRepository),
		delinquents: new(MockDelinquentRepository),
		logs:        new(MockSystemLogRepository),
		notifier:    new(MockNotifier),
	}
	f.uc = NewUseCase(f.repo, f.payments, f.delinquents, f.logs, f.notifier, &fakeTxManager{}, nopLogger{})
	f.uc.timeProvider = &fixedTimeProvider{now: now}
	return f
}

func TestExecute_PaidCompletion(t *testing.T) {
	f := newFixture()

	f.repo.On("GetByID", mock.Anything, int64(5)).Return(pending(), nil)
	f.repo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusCompleted).Return(nil)
	f.repo.On("SetPayment", mock.Anything, int64(5), domain.PaymentPaid, domain.MethodDebit,
		50.0, mock.AnythingOfType("float64"), 1.38).Return(nil)
	f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Amount == 50 && p.Method == domain.MethodDebit && p.PaidAt.Equal(now)
	})).Return(&domain.Payment{ID: 1}, nil)
	f.notifier.On("PublishRefetch", "appointment_completed", []string{"agenda", "agendamentos", "dashboard"}).Return()

	resp, err := f.uc.Execute(context.Background(), &Request{ID: 5, Method: "debito"})

	require.NoError(t, err)
	assert.Equal(t, "concluido", resp.Status)
	assert.Equal(t, "pago", resp.PaymentStatus)
	assert.InDelta(t, 49.31, resp.NetValue, 0.001)
	assert.Equal(t, 1.38, resp.AppliedFee)
	assert.False(t, resp.DebtCreated)
	f.repo.AssertExpectations(t)
	f.payments.AssertExpectations(t)
	f.delinquents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_PixHasNoFee(t *testing.T) {
	f := newFixture()

	f.repo.On("GetByID", mock.Anything, int64(5)).Return(pending(), nil)
	f.repo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusCompleted).Return(nil)
	f.repo.On("SetPayment", mock.Anything, int64(5), domain.PaymentPaid, domain.MethodPix,
		50.0, 50.0, 0.0).Return(nil)
	f.payments.On("Create", mock.Anything, mock.Anything).Return(&domain.Payment{ID: 1}, nil)
	f.notifier.On("PublishRefetch", mock.Anything, mock.Anything).Return()

	resp, err := f.uc.Execute(context.Background(), &Request{ID: 5, Method: "pix"})

	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.NetValue)
	assert.Zero(t, resp.AppliedFee)
}

func TestExecute_ExplicitAmountOverridesPrice(t *testing.T) {
	f := newFixture()

	f.repo.On("GetByID", mock.Anything, int64(5)).Return(pending(), nil)
	f.repo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusCompleted).Return(nil)
	f.repo.On("SetPayment", mock.Anything, int64(5), domain.PaymentPaid, domain.MethodCash,
		65.0, 65.0, 0.0).Return(nil)
	f.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.Amount == 65
	})).Return(&domain.Payment{ID: 1}, nil)
	f.notifier.On("PublishRefetch", mock.Anything, mock.Anything).Return()

	resp, err := f.uc.Execute(context.Background(), &Request{ID: 5, Method: "dinheiro", Amount: ptr.Ptr(65.0)})

	require.NoError(t, err)
	assert.Equal(t, 65.0, resp.PaidAmount)
}

func TestExecute_UnpaidCreatesDebt(t *testing.T) {
	f := newFixture()

	f.repo.On("GetByID", mock.Anything, int64(5)).Return(pending(), nil)
	f.repo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusCompleted).Return(nil)
	f.repo.On("SetPayment", mock.Anything, int64(5), domain.PaymentUnpaid, domain.MethodUnpaid,
		0.0, 0.0, 0.0).Return(nil)
	f.delinquents.On("GetByAppointmentID", mock.Anything, int64(5)).
		Return(nil, delinquentRepo.ErrDelinquentNotFound)
	f.delinquents.On("Create", mock.Anything, mock.MatchedBy(func(d *domain.Delinquent) bool {
		return d.AmountOwed == 50 &&
			d.AmountRemaining == 50 &&
			d.AppointmentID != nil && *d.AppointmentID == 5 &&
			d.ServiceDate != nil &&
			d.DaysOverdue == 2 // записи два дня на момент завершения
	})).Return(&domain.Delinquent{ID: 1}, nil)
	f.logs.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.SystemLog) bool {
		return entry.Type == domain.LogDelinquentCreated && entry.Origin == "sistema"
	})).Return(nil)
	f.notifier.On("PublishRefetch", "appointment_completed", []string{"agenda", "agendamentos", "dashboard", "inadimplentes"}).Return()

	resp, err := f.uc.Execute(context.Background(), &Request{ID: 5, Method: "nao_pago"})

	require.NoError(t, err)
	assert.Equal(t, "nao_pago", resp.PaymentStatus)
	assert.Zero(t, resp.NetValue)
	assert.True(t, resp.DebtCreated)
	f.delinquents.AssertExpectations(t)
	f.logs.AssertExpectations(t)
	f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_UnpaidWithExistingDebtDoesNotDuplicate(t *testing.T) {
	// Долг по этому агендаменту уже есть (создан при ретроактивной регистрации)
	f := newFixture()

	apt := pending()
	apt.Status = domain.StatusCompleted
	f.repo.On("GetByID", mock.Anything, int64(5)).Return(apt, nil)
	f.repo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusCompleted).Return(nil)
	f.repo.On("SetPayment", mock.Anything, int64(5), domain.PaymentUnpaid, domain.MethodUnpaid,
		0.0, 0.0, 0.0).Return(nil)
	f.delinquents.On("GetByAppointmentID", mock.Anything, int64(5)).
		Return(&domain.Delinquent{ID: 7, AppointmentID: ptr.Ptr(int64(5))}, nil)
	f.notifier.On("PublishRefetch", "appointment_completed", []string{"agenda", "agendamentos", "dashboard"}).Return()

	resp, err := f.uc.Execute(context.Background(), &Request{ID: 5, Method: "nao_pago"})

	require.NoError(t, err)
	assert.False(t, resp.DebtCreated)
	f.delinquents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.logs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestExecute_Rejections(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		f := newFixture()
		apt := pending()
		apt.Status = domain.StatusCancelled
		f.repo.On("GetByID", mock.Anything, int64(5)).Return(apt, nil)

		_, err := f.uc.Execute(context.Background(), &Request{ID: 5, Method: "pix"})
		assert.ErrorIs(t, err, ErrCancelled)
	})

	t.Run("already settled", func(t *testing.T) {
		f := newFixture()
		apt := pending()
		apt.Status = domain.StatusCompleted
		apt.PaymentStatus = domain.PaymentPaid
		f.repo.On("GetByID", mock.Anything, int64(5)).Return(apt, nil)

		_, err := f.uc.Execute(context.Background(), &Request{ID: 5, Method: "pix"})
		assert.ErrorIs(t, err, ErrAlreadyCompleted)
	})

	t.Run("completed but pending payment can settle", func(t *testing.T) {
		// Автозавершенная запись: статус concluido, оплата pendente
		f := newFixture()
		apt := pending()
		apt.Status = domain.StatusCompleted
		f.repo.On("GetByID", mock.Anything, int64(5)).Return(apt, nil)
		f.repo.On("UpdateStatus", mock.Anything, int64(5), domain.StatusCompleted).Return(nil)
		f.repo.On("SetPayment", mock.Anything, int64(5), domain.PaymentPaid, domain.MethodPix,
			50.0, 50.0, 0.0).Return(nil)
		f.payments.On("Create", mock.Anything, mock.Anything).Return(&domain.Payment{ID: 1}, nil)
		f.notifier.On("PublishRefetch", mock.Anything, mock.Anything).Return()

		_, err := f.uc.Execute(context.Background(), &Request{ID: 5, Method: "pix"})
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.repo.On("GetByID", mock.Anything, int64(5)).Return(nil, appointmentRepo.ErrAppointmentNotFound)

		_, err := f.uc.Execute(context.Background(), &Request{ID: 5, Method: "pix"})
		assert.ErrorIs(t, err, ErrAppointmentNotFound)
	})

	t.Run("unknown method", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Execute(context.Background(), &Request{ID: 5, Method: "cheque"})
		assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
	})

	t.Run("negative amount", func(t *testing.T) {
		f := newFixture()
		_, err := f.uc.Execute(context.Background(), &Request{ID: 5, Method: "pix", Amount: ptr.Ptr(-1.0)})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
