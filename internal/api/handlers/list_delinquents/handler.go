package list_delinquents

import (
	"errors"
	"net/http"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
	"github.com/barbearia-jao/agenda-service/internal/service/delinquents"
)

const msgInvalidStatus = "status inválido, use pendente ou quitado"

type Handler struct {
	service DelinquentsService
	logger  Logger
}

func NewHandler(service DelinquentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/inadimplentes?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.List(r.Context(), status)
	if err != nil {
		switch {
		case errors.Is(err, delinquents.ErrInvalidInput):
			h.logger.Warn("GET /inadimplentes - Invalid status: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
		default:
			h.logger.Error("GET /inadimplentes - Failed to list delinquents: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
