package list_logs

import (
	"net/http"
	"strconv"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
)

const msgInvalidLimit = "limit inválido"

type Handler struct {
	service SystemLogsService
	logger  Logger
}

func NewHandler(service SystemLogsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/logs?limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.logger.Warn("GET /logs - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = parsed
	}

	result, err := h.service.List(r.Context(), limit)
	if err != nil {
		h.logger.Error("GET /logs - Failed to list system logs: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
