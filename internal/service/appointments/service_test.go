package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	appointmentRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/appointment"
	"github.com/barbearia-jao/agenda-service/internal/service/appointments/models"
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

func (m *MockAppointmentRepository) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.Payment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

type MockWhatsAppLinker struct {
	mock.Mock
}

func (m *MockWhatsAppLinker) ReminderLink(phone, clientName, date, startTime string) string {
	args := m.Called(phone, clientName, date, startTime)
	return args.String(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishRefetch(reason string, views ...string) {
	m.Called(reason, views)
}

type fakeTxManager struct{}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixture struct {
	appointmentRepo *MockAppointmentRepository
	paymentRepo     *MockPaymentRepository
	whatsapp        *MockWhatsAppLinker
	notifier        *MockNotifier
	svc             *Service
}

func newFixture() *fixture {
	f := &fixture{
		appointmentRepo: new(MockAppointmentRepository),
		paymentRepo:     new(MockPaymentRepository),
		whatsapp:        new(MockWhatsAppLinker),
		notifier:        new(MockNotifier),
	}
	f.svc = NewService(f.appointmentRepo, f.paymentRepo, f.whatsapp, f.notifier, fakeTxManager{}, nopLogger{})
	return f
}

func TestGetByID_UpcomingHasReminderLink(t *testing.T) {
	f := newFixture()

	apt := &domain.Appointment{
		ID:         1,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "14:30",
		EndTime:    "15:00",
		Status:     domain.StatusScheduled,
		ClientName: "Carlos Silva",
		Phone:      "5531998765432",
	}
	f.appointmentRepo.On("GetByID", mock.Anything, int64(1)).Return(apt, nil)
	f.whatsapp.On("ReminderLink", "5531998765432", "Carlos Silva", "10/03", "14:30").
		Return("https://wa.me/5531998765432?text=lembrete")

	resp, err := f.svc.GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/5531998765432?text=lembrete", resp.WhatsAppLink)
	f.whatsapp.AssertExpectations(t)
}

func TestGetByID_CompletedHasNoReminderLink(t *testing.T) {
	f := newFixture()

	apt := &domain.Appointment{
		ID:         2,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "09:00",
		Status:     domain.StatusCompleted,
		ClientName: "Carlos Silva",
		Phone:      "5531998765432",
	}
	f.appointmentRepo.On("GetByID", mock.Anything, int64(2)).Return(apt, nil)

	resp, err := f.svc.GetByID(context.Background(), 2)

	require.NoError(t, err)
	assert.Empty(t, resp.WhatsAppLink)
	f.whatsapp.AssertNotCalled(t, "ReminderLink", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()

	f.appointmentRepo.On("GetByID", mock.Anything, int64(99)).
		Return(nil, appointmentRepo.ErrAppointmentNotFound)

	_, err := f.svc.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	f := newFixture()

	_, err := f.svc.List(context.Background(), &models.ListAppointmentsRequest{
		Status: ptr.Ptr("atrasado"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	f.appointmentRepo.AssertNotCalled(t, "ListWithFilter", mock.Anything, mock.Anything)
}

func TestDelete_PublishesRefetch(t *testing.T) {
	f := newFixture()

	f.appointmentRepo.On("Delete", mock.Anything, int64(3)).Return(nil)
	f.notifier.On("PublishRefetch", "appointment_deleted", []string{"agenda", "agendamentos", "dashboard"}).Return()

	err := f.svc.Delete(context.Background(), 3)

	require.NoError(t, err)
	f.notifier.AssertExpectations(t)
}

func TestDelete_NotFound(t *testing.T) {
	f := newFixture()

	f.appointmentRepo.On("Delete", mock.Anything, int64(99)).
		Return(appointmentRepo.ErrAppointmentNotFound)

	err := f.svc.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	f.notifier.AssertNotCalled(t, "PublishRefetch", mock.Anything, mock.Anything)
}

func TestOverview_Aggregation(t *testing.T) {
	f := newFixture()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	debit := domain.MethodDebit
	pix := domain.MethodPix

	appointments := []*domain.Appointment{
		// Оплачено дебетом: 100 брутто, 98.62 нетто
		{
			Status:        domain.StatusCompleted,
			PaymentStatus: domain.PaymentPaid,
			PaymentMethod: &debit,
			PaidAmount:    100,
			NetValue:      ptr.Ptr(98.62),
		},
		// Оплачено pix без комиссии
		{
			Status:        domain.StatusCompleted,
			PaymentStatus: domain.PaymentPaid,
			PaymentMethod: &pix,
			PaidAmount:    50,
			NetValue:      ptr.Ptr(50.0),
		},
		// Fiado: цена уходит в долги
		{
			Status:        domain.StatusCompleted,
			PaymentStatus: domain.PaymentUnpaid,
			Price:         40,
		},
		{Status: domain.StatusScheduled, Price: 60},
		{Status: domain.StatusCancelled},
	}

	f.appointmentRepo.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(filter domain.AppointmentsFilter) bool {
		return filter.StartDate != nil && filter.StartDate.Equal(start) &&
			filter.EndDate != nil && filter.EndDate.Equal(end)
	})).Return(appointments, nil)
	f.paymentRepo.On("ListByPeriod", mock.Anything, start, end.AddDate(0, 0, 1)).
		Return([]*domain.Payment{{ID: 1}, {ID: 2}}, nil)

	resp, err := f.svc.Overview(context.Background(), start, end)

	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalCompleted)
	assert.Equal(t, 1, resp.TotalScheduled)
	assert.Equal(t, 1, resp.TotalCancelled)
	assert.Equal(t, 150.0, resp.GrossRevenue)
	assert.Equal(t, 148.62, resp.NetRevenue)
	assert.InDelta(t, 1.38, resp.TotalFees, 1e-9)
	assert.Equal(t, 40.0, resp.UnpaidAmount)
	assert.Equal(t, 100.0, resp.RevenueByMethod["debito"])
	assert.Equal(t, 50.0, resp.RevenueByMethod["pix"])
	assert.Equal(t, 2, resp.PaymentsRecorded)
}
