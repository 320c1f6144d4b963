package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) ListExpired(ctx context.Context, now time.Time) ([]*domain.Appointment, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
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

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

// 2026-03-10 18:00, the 17:00-17:30 appointment is over, the 18:30 one is not
var sweepNow = time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

func newSweeper(repo *MockAppointmentRepository, logs *MockSystemLogRepository, notifier *MockNotifier) *Sweeper {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_sweep_promotions_total"})
	return NewSweeper(repo, logs, notifier, &fixedTimeProvider{now: sweepNow}, counter, nopLogger{})
}

func TestRunOnce_PromotesExpired(t *testing.T) {
	repo := new(MockAppointmentRepository)
	logs := new(MockSystemLogRepository)
	notifier := new(MockNotifier)

	past := &domain.Appointment{
		ID:        1,
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "17:00",
		EndTime:   "17:30",
		Status:    domain.StatusScheduled,
	}
	ongoing := &domain.Appointment{
		ID:        2,
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "17:45",
		EndTime:   "18:30",
		Status:    domain.StatusConfirmed,
	}

	repo.On("ListExpired", mock.Anything, sweepNow).Return([]*domain.Appointment{past, ongoing}, nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), domain.StatusCompleted).Return(nil)
	logs.On("Create", mock.Anything, mock.MatchedBy(func(entry *domain.SystemLog) bool {
		return entry.Type == domain.LogAppointmentSwept && entry.Origin == "sistema"
	})).Return(nil)
	notifier.On("PublishRefetch", "appointments_auto_completed", []string{"agenda", "agendamentos", "dashboard"}).Return()

	newSweeper(repo, logs, notifier).RunOnce(context.Background())

	repo.AssertExpectations(t)
	logs.AssertExpectations(t)
	notifier.AssertExpectations(t)
	// Незакончившаяся запись не трогается
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, int64(2), mock.Anything)
}

func TestRunOnce_NothingToPromote(t *testing.T) {
	repo := new(MockAppointmentRepository)
	logs := new(MockSystemLogRepository)
	notifier := new(MockNotifier)

	repo.On("ListExpired", mock.Anything, sweepNow).Return([]*domain.Appointment{}, nil)

	newSweeper(repo, logs, notifier).RunOnce(context.Background())

	notifier.AssertNotCalled(t, "PublishRefetch", mock.Anything, mock.Anything)
}

func TestRunOnce_ListError(t *testing.T) {
	repo := new(MockAppointmentRepository)
	logs := new(MockSystemLogRepository)
	notifier := new(MockNotifier)

	repo.On("ListExpired", mock.Anything, sweepNow).Return(nil, errors.New("db down"))

	newSweeper(repo, logs, notifier).RunOnce(context.Background())

	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunOnce_ContinuesAfterUpdateError(t *testing.T) {
	repo := new(MockAppointmentRepository)
	logs := new(MockSystemLogRepository)
	notifier := new(MockNotifier)

	first := &domain.Appointment{
		ID: 1, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "09:00", EndTime: "09:30", Status: domain.StatusScheduled,
	}
	second := &domain.Appointment{
		ID: 2, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00", EndTime: "10:30", Status: domain.StatusScheduled,
	}

	repo.On("ListExpired", mock.Anything, sweepNow).Return([]*domain.Appointment{first, second}, nil)
	repo.On("UpdateStatus", mock.Anything, int64(1), domain.StatusCompleted).Return(errors.New("db error"))
	repo.On("UpdateStatus", mock.Anything, int64(2), domain.StatusCompleted).Return(nil)
	logs.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifier.On("PublishRefetch", mock.Anything, mock.Anything).Return()

	newSweeper(repo, logs, notifier).RunOnce(context.Background())

	repo.AssertExpectations(t)
	notifier.AssertCalled(t, "PublishRefetch", "appointments_auto_completed", []string{"agenda", "agendamentos", "dashboard"})
}
