package list_clients

import (
	"net/http"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
)

type Handler struct {
	service ClientsService
	logger  Logger
}

func NewHandler(service ClientsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clientes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /clientes - Failed to list clients: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
