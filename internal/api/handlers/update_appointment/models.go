package update_appointment

import (
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	updateAppointment "github.com/barbearia-jao/agenda-service/internal/usecase/update_appointment"
	"github.com/barbearia-jao/agenda-service/pkg/types"
)

// UpdateAppointmentRequest HTTP request model. Отсутствующие поля не меняются.
type UpdateAppointmentRequest struct {
	Date       *string  `json:"date,omitempty"`
	StartTime  *string  `json:"startTime,omitempty"`
	EndTime    *string  `json:"endTime,omitempty"`
	Status     *string  `json:"status,omitempty"`
	ClientName *string  `json:"clientName,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(id int64) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		ID:         id,
		Status:     r.Status,
		ClientName: r.ClientName,
		Price:      r.Price,
		Notes:      r.Notes,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}
	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}
	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &endTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:        resp.ID,
		Date:      resp.Date.Format(domain.DateFormat),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
		Status:    resp.Status,
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
