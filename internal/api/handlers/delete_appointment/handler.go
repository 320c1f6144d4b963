package delete_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
	"github.com/barbearia-jao/agenda-service/internal/service/appointments"
)

const (
	msgInvalidID = "id de agendamento inválido"
	msgNotFound  = "agendamento não encontrado"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/agendamentos/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /agendamentos/{id} - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /agendamentos/%d - Not found", id)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("DELETE /agendamentos/%d - Failed to delete appointment: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /agendamentos/%d - Appointment deleted", id)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
