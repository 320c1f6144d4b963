package create_delinquent

import (
	"errors"
	"net/http"
	"time"

	"github.com/barbearia-jao/agenda-service/internal/api/handlers"
	"github.com/barbearia-jao/agenda-service/internal/domain"
	"github.com/barbearia-jao/agenda-service/internal/service/delinquents"
	"github.com/barbearia-jao/agenda-service/internal/service/delinquents/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidDueDate     = "formato de data de vencimento inválido, use YYYY-MM-DD"
	msgInvalidAmount      = "valor devido deve ser maior que zero"
)

// CreateDelinquentRequest HTTP request model
type CreateDelinquentRequest struct {
	ClientName  string  `json:"clientName"`
	Phone       string  `json:"phone,omitempty"`
	ServiceName string  `json:"serviceName,omitempty"`
	AmountOwed  float64 `json:"amountOwed"`
	DueDate     *string `json:"dueDate,omitempty"`
	Notes       *string `json:"notes,omitempty"`
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

// Handle POST /api/v1/inadimplentes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateDelinquentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /inadimplentes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.CreateDelinquentRequest{
		ClientName:  req.ClientName,
		Phone:       req.Phone,
		ServiceName: req.ServiceName,
		AmountOwed:  req.AmountOwed,
		Notes:       req.Notes,
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, err := time.Parse(domain.DateFormat, *req.DueDate)
		if err != nil {
			h.logger.Warn("POST /inadimplentes - Invalid due date=%s", *req.DueDate)
			handlers.RespondBadRequest(w, msgInvalidDueDate)
			return
		}
		serviceReq.DueDate = &due
	}

	result, err := h.service.CreateManual(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, delinquents.ErrInvalidAmount):
			h.logger.Warn("POST /inadimplentes - Invalid amount: %v", err)
			handlers.RespondBadRequest(w, msgInvalidAmount)
		case errors.Is(err, delinquents.ErrInvalidInput):
			h.logger.Warn("POST /inadimplentes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
		default:
			h.logger.Error("POST /inadimplentes - Failed to create delinquent: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /inadimplentes - Delinquent created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
