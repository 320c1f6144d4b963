package list_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
	"github.com/barbearia-jao/agenda-service/internal/domain"
	"github.com/barbearia-jao/agenda-service/internal/service/appointments"
	"github.com/barbearia-jao/agenda-service/internal/service/appointments/models"
)

const (
	msgInvalidDate   = "formato de data inválido, use YYYY-MM-DD"
	msgInvalidFilter = "filtro inválido"
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

// Handle GET /api/v1/agendamentos?date=&startDate=&endDate=&status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListAppointmentsRequest{}
	query := r.URL.Query()

	for _, param := range []struct {
		name string
		dest **time.Time
	}{
		{"date", &req.Date},
		{"startDate", &req.StartDate},
		{"endDate", &req.EndDate},
	} {
		if raw := query.Get(param.name); raw != "" {
			parsed, err := time.Parse(domain.DateFormat, raw)
			if err != nil {
				h.logger.Warn("GET /agendamentos - Invalid %s=%s", param.name, raw)
				handlers.RespondBadRequest(w, msgInvalidDate)
				return
			}
			*param.dest = &parsed
		}
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	if query.Get("excludeCancelled") == "true" {
		req.ExcludeCancelled = true
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /agendamentos - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
		default:
			h.logger.Error("GET /agendamentos - Failed to list appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
