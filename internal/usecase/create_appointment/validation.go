package create_appointment

import (
	"fmt"
	"strings"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if len(strings.TrimSpace(req.ClientName)) < domain.MinClientNameLength {
		return fmt.Errorf("%w: client name must have at least %d characters", ErrInvalidInput, domain.MinClientNameLength)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if !req.EndTime.IsZero() {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
		if !req.StartTime.IsBefore(req.EndTime) {
			return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidTimeRange)
		}
	}

	if req.Status != "" {
		switch domain.AppointmentStatus(req.Status) {
		case domain.StatusScheduled, domain.StatusConfirmed, domain.StatusCompleted:
		default:
			return fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes too long", ErrInvalidInput)
	}

	if req.ServiceID == nil {
		return fmt.Errorf("%w: service is required", ErrInvalidInput)
	}

	if req.Price != nil && *req.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	return nil
}
