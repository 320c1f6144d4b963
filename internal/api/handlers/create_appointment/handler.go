package create_appointment

import (
	"errors"
	"net/http"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
	createAppointment "github.com/barbearia-jao/agenda-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody   = "corpo da requisição inválido"
	msgInvalidDate          = "formato de data inválido, use YYYY-MM-DD"
	msgInvalidTime          = "formato de horário inválido, use HH:MM"
	msgSlotTaken            = "Putz, esse horário acabou de ser ocupado. Por favor, escolha outro!"
	msgDayClosed            = "a barbearia está fechada neste dia"
	msgServiceNotFound      = "serviço não encontrado"
	msgInvalidTimeRange     = "o horário de término deve ser depois do início"
	msgInvalidPaymentMethod = "forma de pagamento inválida"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/agendamentos
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /agendamentos - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /agendamentos - Failed to parse request: %v", err)
		if req.Date != "" && len(req.Date) == 10 {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /agendamentos - Slot taken: date=%s time=%s", req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrDayClosed):
			h.logger.Warn("POST /agendamentos - Day closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDayClosed)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /agendamentos - Service not found: service_id=%v", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrInvalidTimeRange):
			h.logger.Warn("POST /agendamentos - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createAppointment.ErrInvalidPaymentMethod):
			h.logger.Warn("POST /agendamentos - Invalid payment method: %v", req.PaymentMethod)
			handlers.RespondBadRequest(w, msgInvalidPaymentMethod)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /agendamentos - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /agendamentos - Failed to create appointment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /agendamentos - Appointment created: id=%d date=%s time=%s",
		result.ID, req.Date, req.StartTime)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
