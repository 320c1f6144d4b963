package list_services

import (
	"net/http"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/servicos
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /servicos - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
