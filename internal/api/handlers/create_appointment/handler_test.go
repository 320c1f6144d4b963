package create_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	createAppointment "github.com/barbearia-jao/agenda-service/internal/usecase/create_appointment"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createAppointment.Response), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func doRequest(t *testing.T, uc *MockUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/agendamentos", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const validBody = `{"date":"2026-03-10","startTime":"10:00","clientName":"Carlos Silva"}`

func TestHandle_Created(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createAppointment.Request) bool {
		return req.ClientName == "Carlos Silva" && req.StartTime == "10:00"
	})).Return(&createAppointment.Response{
		ID:        101,
		StartTime: "10:00",
		EndTime:   "10:30",
		Status:    "agendado",
	}, nil)

	rec := doRequest(t, uc, validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp AppointmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, "10:30", resp.EndTime)
}

func TestHandle_SlotConflict(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, createAppointment.ErrSlotConflict)

	rec := doRequest(t, uc, validBody)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Putz, esse horário acabou de ser ocupado. Por favor, escolha outro!", resp.Error)
}

func TestHandle_DayClosed(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, createAppointment.ErrDayClosed)

	rec := doRequest(t, uc, `{"date":"2026-03-08","startTime":"10:00","clientName":"Carlos Silva"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_ServiceNotFound(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, createAppointment.ErrServiceNotFound)

	rec := doRequest(t, uc, validBody)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandle_BadDate(t *testing.T) {
	uc := new(MockUseCase)

	rec := doRequest(t, uc, `{"date":"10/03/2026","startTime":"10:00","clientName":"Carlos Silva"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_BadTime(t *testing.T) {
	uc := new(MockUseCase)

	rec := doRequest(t, uc, `{"date":"2026-03-10","startTime":"25:00","clientName":"Carlos Silva"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_UnknownField(t *testing.T) {
	uc := new(MockUseCase)

	rec := doRequest(t, uc, `{"date":"2026-03-10","startTime":"10:00","clientName":"Carlos Silva","surprise":true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	rec := doRequest(t, uc, validBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
