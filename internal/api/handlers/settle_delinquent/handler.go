package settle_delinquent

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
	"github.com/barbearia-jao/agenda-service/internal/service/delinquents"
	"github.com/barbearia-jao/agenda-service/internal/service/delinquents/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidID          = "id de inadimplente inválido"
	msgNotFound           = "inadimplente não encontrado"
	msgAlreadySettled     = "dívida já foi quitada"
	msgInvalidAmount      = "valor de pagamento inválido"
	msgInvalidMethod      = "forma de pagamento inválida"
)

// SettleDelinquentRequest HTTP request model
type SettleDelinquentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

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

// Handle POST /api/v1/inadimplentes/{id}/quitar
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /inadimplentes/{id}/quitar - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req SettleDelinquentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /inadimplentes/%d/quitar - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Settle(r.Context(), id, &models.SettleDelinquentRequest{
		Amount: req.Amount,
		Method: req.Method,
	})
	if err != nil {
		switch {
		case errors.Is(err, delinquents.ErrDelinquentNotFound):
			h.logger.Warn("POST /inadimplentes/%d/quitar - Not found", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, delinquents.ErrAlreadySettled):
			h.logger.Warn("POST /inadimplentes/%d/quitar - Already settled", id)
			handlers.RespondError(w, http.StatusConflict, msgAlreadySettled)

		case errors.Is(err, delinquents.ErrInvalidAmount):
			h.logger.Warn("POST /inadimplentes/%d/quitar - Invalid amount: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, delinquents.ErrInvalidInput):
			h.logger.Warn("POST /inadimplentes/%d/quitar - Invalid method: %v", id, err)
			handlers.RespondBadRequest(w, msgInvalidMethod)

		default:
			h.logger.Error("POST /inadimplentes/%d/quitar - Failed to settle: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /inadimplentes/%d/quitar - Settled, remaining=%.2f", id, result.AmountRemaining)
	handlers.RespondJSON(w, http.StatusOK, result)
}
