package domain

import (
	"math"
	"time"

	"github.com/barbearia-jao/agenda-service/pkg/types"
)

// SlotState binary availability state of a grid slot
type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotOccupied  SlotState = "occupied"
)

// GridSlot is one cell of the schedule grid.
type GridSlot struct {
	Time  types.TimeString
	State SlotState

	// Main is true for the first slot of a multi-slot appointment. Only
	// the main slot carries the client display data; continuation slots
	// render a generic "occupied" marker so the client name is not
	// repeated down the column.
	Main bool

	AppointmentID int64
	ClientName    string
	ServiceName   string
	StartTime     types.TimeString
	EndTime       types.TimeString
}

// GridPeriod is a business-hours window rendered as a list of slots.
type GridPeriod struct {
	Name  string
	Slots []GridSlot
}

// DayGrid is the full availability picture of a date.
type DayGrid struct {
	Date    time.Time
	Closed  bool
	Periods []GridPeriod

	// Derived statistics, not stored anywhere.
	TotalSlots       int
	OccupiedSlots    int
	AvailableSlots   int
	OccupancyPercent int
}

// occupiedSlot связывает слот сетки с занявшей его записью
type occupiedSlot struct {
	apt  *Appointment
	main bool
}

// BuildDayGrid строит сетку доступности даты по рабочим часам и активным
// записям. Для каждой записи занятый интервал [start, end) разбивается на
// 15-минутные слоты; первый слот помечается основным, остальные -
// продолжением. Записи без horario_fim занимают 30 минут по умолчанию.
//
// Для выходного дня (нет окон в расписании) возвращается Closed=true с
// нулем слотов - день закрыт, а не "весь свободен".
func BuildDayGrid(date time.Time, schedule WeekSchedule, appointments []*Appointment) (*DayGrid, error) {
	windows := schedule.WindowsFor(date)
	if len(windows) == 0 {
		return &DayGrid{Date: date, Closed: true}, nil
	}

	occupied := make(map[types.TimeString]occupiedSlot)
	for _, apt := range appointments {
		if !apt.IsActive() {
			continue
		}

		slots, err := types.OccupiedSlots(apt.StartTime, apt.EndOrDefault(), SlotStepMinutes)
		if err != nil {
			return nil, err
		}
		for i, slot := range slots {
			occupied[slot] = occupiedSlot{apt: apt, main: i == 0}
		}
	}

	grid := &DayGrid{Date: date}
	for _, window := range windows {
		labels, err := types.GenerateSlots(window.Open, window.Close, SlotStepMinutes)
		if err != nil {
			return nil, err
		}

		period := GridPeriod{Name: window.Name, Slots: make([]GridSlot, 0, len(labels))}
		for _, label := range labels {
			slot := GridSlot{Time: label, State: SlotAvailable}

			if occ, ok := occupied[label]; ok {
				slot.State = SlotOccupied
				slot.Main = occ.main
				slot.AppointmentID = occ.apt.ID
				slot.StartTime = occ.apt.StartTime
				slot.EndTime = occ.apt.EndOrDefault()
				if occ.main {
					slot.ClientName = occ.apt.ClientName
					slot.ServiceName = occ.apt.ServiceName
				}
				grid.OccupiedSlots++
			}

			period.Slots = append(period.Slots, slot)
			grid.TotalSlots++
		}
		grid.Periods = append(grid.Periods, period)
	}

	grid.AvailableSlots = grid.TotalSlots - grid.OccupiedSlots
	if grid.TotalSlots > 0 {
		grid.OccupancyPercent = int(math.Round(float64(grid.OccupiedSlots) / float64(grid.TotalSlots) * 100))
	}

	return grid, nil
}
