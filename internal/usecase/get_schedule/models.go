package get_schedule

import (
	"time"

	"github.com/barbearia-jao/agenda-service/internal/domain"
)

// Request запрос на сетку доступности даты
type Request struct {
	Date time.Time
}

// SlotResponse один слот сетки
type SlotResponse struct {
	Time          string `json:"time"`
	State         string `json:"state"`
	Main          bool   `json:"main,omitempty"`
	AppointmentID int64  `json:"appointmentId,omitempty"`
	ClientName    string `json:"clientName,omitempty"`
	ServiceName   string `json:"serviceName,omitempty"`
	StartTime     string `json:"startTime,omitempty"`
	EndTime       string `json:"endTime,omitempty"`
}

// PeriodResponse окно рабочих часов со слотами
type PeriodResponse struct {
	Name  string         `json:"name"`
	Slots []SlotResponse `json:"slots"`
}

// Response сетка доступности даты со сводной статистикой
type Response struct {
	Date             string           `json:"date"`
	Closed           bool             `json:"closed"`
	Periods          []PeriodResponse `json:"periods"`
	TotalSlots       int              `json:"totalSlots"`
	OccupiedSlots    int              `json:"occupiedSlots"`
	AvailableSlots   int              `json:"availableSlots"`
	OccupancyPercent int              `json:"occupancyPercent"`
}

func toResponse(grid *domain.DayGrid) *Response {
	resp := &Response{
		Date:             grid.Date.Format(domain.DateFormat),
		Closed:           grid.Closed,
		Periods:          make([]PeriodResponse, 0, len(grid.Periods)),
		TotalSlots:       grid.TotalSlots,
		OccupiedSlots:    grid.OccupiedSlots,
		AvailableSlots:   grid.AvailableSlots,
		OccupancyPercent: grid.OccupancyPercent,
	}

	for _, period := range grid.Periods {
		p := PeriodResponse{Name: period.Name, Slots: make([]SlotResponse, 0, len(period.Slots))}
		for _, slot := range period.Slots {
			s := SlotResponse{
				Time:  slot.Time.String(),
				State: string(slot.State),
			}
			if slot.State == domain.SlotOccupied {
				s.Main = slot.Main
				s.AppointmentID = slot.AppointmentID
				s.ClientName = slot.ClientName
				s.ServiceName = slot.ServiceName
				s.StartTime = slot.StartTime.String()
				s.EndTime = slot.EndTime.String()
			}
			p.Slots = append(p.Slots, s)
		}
		resp.Periods = append(resp.Periods, p)
	}

	return resp
}
