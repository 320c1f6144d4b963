package complete_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
	completeAppointment "github.com/barbearia-jao/agenda-service/internal/usecase/complete_appointment"
)

const (
	msgInvalidRequestBody   = "corpo da requisição inválido"
	msgInvalidID            = "id de agendamento inválido"
	msgNotFound             = "agendamento não encontrado"
	msgAlreadyCompleted     = "agendamento já foi concluído"
	msgCancelled            = "agendamento cancelado não pode ser concluído"
	msgInvalidPaymentMethod = "forma de pagamento inválida"
)

// CompleteAppointmentRequest HTTP request model
type CompleteAppointmentRequest struct {
	Method string   `json:"method"`
	Amount *float64 `json:"amount,omitempty"`
}

type Handler struct {
	useCase CompleteAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CompleteAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/agendamentos/{id}/concluir
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /agendamentos/{id}/concluir - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req CompleteAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /agendamentos/%d/concluir - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &completeAppointment.Request{
		ID:     id,
		Method: req.Method,
		Amount: req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, completeAppointment.ErrAppointmentNotFound):
			h.logger.Warn("POST /agendamentos/%d/concluir - Not found", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, completeAppointment.ErrAlreadyCompleted):
			h.logger.Warn("POST /agendamentos/%d/concluir - Already completed", id)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyCompleted)

		case errors.Is(err, completeAppointment.ErrCancelled):
			h.logger.Warn("POST /agendamentos/%d/concluir - Cancelled", id)
			handlers.RespondError(w, http.StatusConflict, msgCancelled)

		case errors.Is(err, completeAppointment.ErrInvalidPaymentMethod):
			h.logger.Warn("POST /agendamentos/%d/concluir - Invalid method=%s", id, req.Method)
			handlers.RespondBadRequest(w, msgInvalidPaymentMethod)

		case errors.Is(err, completeAppointment.ErrInvalidInput):
			h.logger.Warn("POST /agendamentos/%d/concluir - Invalid input: %v", id, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /agendamentos/%d/concluir - Failed to complete appointment: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /agendamentos/%d/concluir - Completed with method=%s", id, req.Method)
	handlers.RespondJSON(w, http.StatusOK, result)
}
