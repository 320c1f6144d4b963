package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
	updateAppointment "github.com/barbearia-jao/agenda-service/internal/usecase/update_appointment"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidID          = "id de agendamento inválido"
	msgInvalidDateOrTime  = "formato de data ou horário inválido"
	msgSlotTaken          = "Putz, esse horário acabou de ser ocupado. Por favor, escolha outro!"
	msgDayClosed          = "a barbearia está fechada neste dia"
	msgNotFound           = "agendamento não encontrado"
	msgInvalidTimeRange   = "o horário de término deve ser depois do início"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/agendamentos/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /agendamentos/{id} - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /agendamentos/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(id)
	if err != nil {
		h.logger.Warn("PUT /agendamentos/%d - Failed to parse request: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /agendamentos/%d - Not found", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateAppointment.ErrSlotConflict):
			h.logger.Warn("PUT /agendamentos/%d - Slot taken", id)
			handlers.RespondError(w, http.StatusConflict, msgSlotTaken)

		case errors.Is(err, updateAppointment.ErrDayClosed):
			h.logger.Warn("PUT /agendamentos/%d - Day closed", id)
			handlers.RespondBadRequest(w, msgDayClosed)

		case errors.Is(err, updateAppointment.ErrInvalidTimeRange):
			h.logger.Warn("PUT /agendamentos/%d - Invalid time range: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, updateAppointment.ErrInvalidInput):
			h.logger.Warn("PUT /agendamentos/%d - Invalid input: %v", id, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /agendamentos/%d - Failed to update appointment: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /agendamentos/%d - Appointment updated", id)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
