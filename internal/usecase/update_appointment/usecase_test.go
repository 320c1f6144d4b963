package update_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	appointmentRepo "github.com/barbearia-jao/agenda-service/internal/infra/storage/appointment"
	"github.com/barbearia-jao/agenda-service/pkg/ptr"
	"github.com/barbearia-jao/agenda-service/pkg/types"
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

func (m *MockAppointmentRepository) Update(ctx context.Context, apt *domain.Appointment) error {
	args := m.Called(ctx, apt)
	return args.Error(0)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PublishRefetch(reason string, views ...string) {
	m.Called(reason, views)
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCounter struct {
	count int
}

func (c *fakeCounter) Inc() { c.count++ }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// 2026-03-10 is a Tuesday, 2026-03-11 a Wednesday
var (
	tuesday   = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	wednesday = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
)

func stored() *domain.Appointment {
	return &domain.Appointment{
		ID:         5,
		Date:       tuesday,
		StartTime:  "10:00",
		EndTime:    "10:30",
		Status:     domain.StatusScheduled,
		ClientName: "Carlos Silva",
		Price:      50,
	}
}

func newUC(repo *MockAppointmentRepository, notifier *MockNotifier, counter *fakeCounter) *UseCase {
	return NewUseCase(repo, notifier, &fakeTxManager{}, counter, nopLogger{})
}

func TestExecute_UpdateWithoutSlotChange(t *testing.T) {
	repo := new(MockAppointmentRepository)
	notifier := new(MockNotifier)
	counter := &fakeCounter{}

	repo.On("GetByID", mock.Anything, int64(5)).Return(stored(), nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(apt *domain.Appointment) bool {
		return apt.ClientName == "Carlos Souza" && apt.Price == 60
	})).Return(nil)
	notifier.On("PublishRefetch", "appointment_updated", []string{"agenda", "agendamentos", "dashboard"}).Return()

	uc := newUC(repo, notifier, counter)
	resp, err := uc.Execute(context.Background(), &Request{
		ID:         5,
		ClientName: ptr.Ptr("Carlos Souza"),
		Price:      ptr.Ptr(60.0),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	// Слот не менялся - проверка конфликтов не выполнялась
	repo.AssertNotCalled(t, "ListWithFilter", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestExecute_RescheduleChecksConflicts(t *testing.T) {
	repo := new(MockAppointmentRepository)
	notifier := new(MockNotifier)
	counter := &fakeCounter{}

	repo.On("GetByID", mock.Anything, int64(5)).Return(stored(), nil)
	repo.On("ListWithFilter", mock.Anything, mock.MatchedBy(func(f domain.AppointmentsFilter) bool {
		return f.Date != nil && f.Date.Equal(wednesday) && f.ExcludeCancelled
	})).Return([]*domain.Appointment{}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	notifier.On("PublishRefetch", mock.Anything, mock.Anything).Return()

	uc := newUC(repo, notifier, counter)
	resp, err := uc.Execute(context.Background(), &Request{
		ID:   5,
		Date: &wednesday,
	})

	require.NoError(t, err)
	assert.Equal(t, wednesday, resp.Date)
	repo.AssertExpectations(t)
}

func TestExecute_RescheduleConflict(t *testing.T) {
	repo := new(MockAppointmentRepository)
	notifier := new(MockNotifier)
	counter := &fakeCounter{}

	repo.On("GetByID", mock.Anything, int64(5)).Return(stored(), nil)
	repo.On("ListWithFilter", mock.Anything, mock.Anything).Return([]*domain.Appointment{
		{ID: 8, StartTime: "11:00", EndTime: "11:30", Status: domain.StatusConfirmed},
	}, nil)

	uc := newUC(repo, notifier, counter)
	_, err := uc.Execute(context.Background(), &Request{
		ID:        5,
		StartTime: ptr.Ptr(types.TimeString("11:00")),
		EndTime:   ptr.Ptr(types.TimeString("11:30")),
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Equal(t, 1, counter.count)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestExecute_RescheduleIgnoresItself(t *testing.T) {
	repo := new(MockAppointmentRepository)
	notifier := new(MockNotifier)
	counter := &fakeCounter{}

	// Единственная запись дня - она сама
	repo.On("GetByID", mock.Anything, int64(5)).Return(stored(), nil)
	repo.On("ListWithFilter", mock.Anything, mock.Anything).Return([]*domain.Appointment{
		{ID: 5, StartTime: "10:00", EndTime: "10:30", Status: domain.StatusScheduled},
	}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	notifier.On("PublishRefetch", mock.Anything, mock.Anything).Return()

	uc := newUC(repo, notifier, counter)
	_, err := uc.Execute(context.Background(), &Request{
		ID:        5,
		StartTime: ptr.Ptr(types.TimeString("10:15")),
		EndTime:   ptr.Ptr(types.TimeString("10:45")),
	})

	require.NoError(t, err)
	assert.Zero(t, counter.count)
}

func TestExecute_ReactivatingCancelledChecksConflicts(t *testing.T) {
	repo := new(MockAppointmentRepository)
	notifier := new(MockNotifier)
	counter := &fakeCounter{}

	cancelled := stored()
	cancelled.Status = domain.StatusCancelled

	repo.On("GetByID", mock.Anything, int64(5)).Return(cancelled, nil)
	repo.On("ListWithFilter", mock.Anything, mock.Anything).Return([]*domain.Appointment{
		{ID: 9, StartTime: "10:00", EndTime: "10:30", Status: domain.StatusScheduled},
	}, nil)

	uc := newUC(repo, notifier, counter)
	_, err := uc.Execute(context.Background(), &Request{
		ID:     5,
		Status: ptr.Ptr("agendado"),
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_RescheduleToClosedDay(t *testing.T) {
	repo := new(MockAppointmentRepository)
	notifier := new(MockNotifier)
	counter := &fakeCounter{}

	repo.On("GetByID", mock.Anything, int64(5)).Return(stored(), nil)

	uc := newUC(repo, notifier, counter)
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		ID:   5,
		Date: &sunday,
	})

	assert.ErrorIs(t, err, ErrDayClosed)
}

func TestExecute_NotFound(t *testing.T) {
	repo := new(MockAppointmentRepository)
	notifier := new(MockNotifier)
	counter := &fakeCounter{}

	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, appointmentRepo.ErrAppointmentNotFound)

	uc := newUC(repo, notifier, counter)
	_, err := uc.Execute(context.Background(), &Request{ID: 404})

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_InvalidTimeRange(t *testing.T) {
	repo := new(MockAppointmentRepository)
	notifier := new(MockNotifier)
	counter := &fakeCounter{}

	repo.On("GetByID", mock.Anything, int64(5)).Return(stored(), nil)

	uc := newUC(repo, notifier, counter)
	_, err := uc.Execute(context.Background(), &Request{
		ID:        5,
		StartTime: ptr.Ptr(types.TimeString("11:00")),
		EndTime:   ptr.Ptr(types.TimeString("10:00")),
	})

	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestExecute_InvalidID(t *testing.T) {
	uc := newUC(new(MockAppointmentRepository), new(MockNotifier), &fakeCounter{})

	_, err := uc.Execute(context.Background(), &Request{ID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
