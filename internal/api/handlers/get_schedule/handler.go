package get_schedule

import (
	"net/http"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
	"github.com/barbearia-jao/agenda-service/internal/domain"
	getSchedule "github.com/barbearia-jao/agenda-service/internal/usecase/get_schedule"
)

const (
	msgMissingDate = "parâmetro date é obrigatório"
	msgInvalidDate = "formato de data inválido, use YYYY-MM-DD"
)

type Handler struct {
	useCase GetScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/agenda?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		h.logger.Warn("GET /agenda - Invalid date=%s", raw)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSchedule.Request{Date: date})
	if err != nil {
		h.logger.Error("GET /agenda - Failed to build schedule for date=%s: %v", raw, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
