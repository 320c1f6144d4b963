package get_overview

import (
	"net/http"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
	"github.com/barbearia-jao/agenda-service/internal/domain"
)

const msgInvalidDate = "formato de data inválido, use YYYY-MM-DD"

type Handler struct {
	service      AppointmentsService
	timeProvider TimeProvider
	logger       Logger
}

func NewHandler(service AppointmentsService, timeProvider TimeProvider, logger Logger) *Handler {
	return &Handler{
		service:      service,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Handle GET /api/v1/dashboard?startDate=&endDate=
// Без параметров возвращает сводку текущего дня.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	now := h.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	startDate, endDate := today, today
	query := r.URL.Query()

	if raw := query.Get("startDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /dashboard - Invalid startDate=%s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		startDate = parsed
	}
	if raw := query.Get("endDate"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /dashboard - Invalid endDate=%s", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		endDate = parsed
	}

	result, err := h.service.Overview(r.Context(), startDate, endDate)
	if err != nil {
		h.logger.Error("GET /dashboard - Failed to build overview: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
