package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbearia-jao/agenda-service/pkg/types"
)

// 2026-03-10 is a Tuesday, 2026-03-08 a Sunday.
var (
	tuesday = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	sunday  = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
)

func TestBuildDayGrid_ClosedDay(t *testing.T) {
	grid, err := BuildDayGrid(sunday, DefaultWeekSchedule(), nil)
	require.NoError(t, err)

	assert.True(t, grid.Closed)
	assert.Empty(t, grid.Periods)
	assert.Zero(t, grid.TotalSlots)
}

func TestBuildDayGrid_EmptyDay(t *testing.T) {
	grid, err := BuildDayGrid(tuesday, DefaultWeekSchedule(), nil)
	require.NoError(t, err)

	assert.False(t, grid.Closed)
	require.Len(t, grid.Periods, 2)
	assert.Equal(t, "manha", grid.Periods[0].Name)
	assert.Equal(t, "tarde", grid.Periods[1].Name)

	// 09:00..12:00 включительно = 13 слотов, 13:00..19:00 = 25
	assert.Len(t, grid.Periods[0].Slots, 13)
	assert.Len(t, grid.Periods[1].Slots, 25)
	assert.Equal(t, 38, grid.TotalSlots)
	assert.Equal(t, 38, grid.AvailableSlots)
	assert.Zero(t, grid.OccupiedSlots)
	assert.Zero(t, grid.OccupancyPercent)
}

func TestBuildDayGrid_MarksOccupiedSlots(t *testing.T) {
	appointments := []*Appointment{
		{
			ID:          7,
			Date:        tuesday,
			StartTime:   "10:00",
			EndTime:     "10:30",
			Status:      StatusScheduled,
			ClientName:  "Carlos Silva",
			ServiceName: "Corte degradê",
		},
	}

	grid, err := BuildDayGrid(tuesday, DefaultWeekSchedule(), appointments)
	require.NoError(t, err)

	slots := map[types.TimeString]GridSlot{}
	for _, s := range grid.Periods[0].Slots {
		slots[s.Time] = s
	}

	main := slots["10:00"]
	assert.Equal(t, SlotOccupied, main.State)
	assert.True(t, main.Main)
	assert.Equal(t, int64(7), main.AppointmentID)
	assert.Equal(t, "Carlos Silva", main.ClientName)
	assert.Equal(t, "Corte degradê", main.ServiceName)

	continuation := slots["10:15"]
	assert.Equal(t, SlotOccupied, continuation.State)
	assert.False(t, continuation.Main)
	assert.Empty(t, continuation.ClientName)

	// Полуоткрытый интервал: слот на границе конца свободен
	assert.Equal(t, SlotAvailable, slots["10:30"].State)

	assert.Equal(t, 2, grid.OccupiedSlots)
	assert.Equal(t, 36, grid.AvailableSlots)
	assert.Equal(t, 5, grid.OccupancyPercent)
}

func TestBuildDayGrid_IgnoresCancelled(t *testing.T) {
	appointments := []*Appointment{
		{ID: 1, Date: tuesday, StartTime: "10:00", EndTime: "11:00", Status: StatusCancelled},
	}

	grid, err := BuildDayGrid(tuesday, DefaultWeekSchedule(), appointments)
	require.NoError(t, err)
	assert.Zero(t, grid.OccupiedSlots)
}

func TestWeekSchedule_IsClosed(t *testing.T) {
	schedule := DefaultWeekSchedule()

	assert.True(t, schedule.IsClosed(sunday))
	assert.True(t, schedule.IsClosed(sunday.AddDate(0, 0, 1))) // понедельник
	assert.False(t, schedule.IsClosed(tuesday))
}

func TestAppointment_EndOrDefault(t *testing.T) {
	apt := &Appointment{StartTime: "10:00", EndTime: "11:15"}
	assert.Equal(t, types.TimeString("11:15"), apt.EndOrDefault())

	apt = &Appointment{StartTime: "10:00"}
	assert.Equal(t, types.TimeString("10:30"), apt.EndOrDefault())
}

func TestAppointment_EndDateTime(t *testing.T) {
	apt := &Appointment{Date: tuesday, StartTime: "18:30", EndTime: "19:00"}
	assert.Equal(t, time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC), apt.EndDateTime())
}
