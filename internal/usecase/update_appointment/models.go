package update_appointment

import (
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
	"github.com/barbearia-jao/agenda-service/pkg/types"
)

// Request запрос на изменение записи. Nil-поля не меняются.
type Request struct {
	ID         int64
	Date       *time.Time
	StartTime  *types.TimeString
	EndTime    *types.TimeString
	Status     *string
	ClientName *string
	Price      *float64
	Notes      *string
}

// Response измененная запись
type Response struct {
	ID        int64            `json:"id"`
	Date      time.Time        `json:"date"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	Status    string           `json:"status"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func toResponse(apt *domain.Appointment) *Response {
	return &Response{
		ID:        apt.ID,
		Date:      apt.Date,
		StartTime: apt.StartTime,
		EndTime:   apt.EndTime,
		Status:    string(apt.Status),
		UpdatedAt: apt.UpdatedAt,
	}
}
