package contact_delinquent

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
	"github.com/barbearia-jao/agenda-service/internal/service/delinquents"
)

const (
	msgInvalidID = "id de inadimplente inválido"
	msgNotFound  = "inadimplente não encontrado"
)

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

// Handle POST /api/v1/inadimplentes/{id}/cobrar
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /inadimplentes/{id}/cobrar - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.RegisterContact(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, delinquents.ErrDelinquentNotFound):
			h.logger.Warn("POST /inadimplentes/%d/cobrar - Not found", id)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("POST /inadimplentes/%d/cobrar - Failed to register contact: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /inadimplentes/%d/cobrar - Contact registered, attempts=%d", id, result.ContactAttempts)
	handlers.RespondJSON(w, http.StatusOK, result)
}
