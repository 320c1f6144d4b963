package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/barbearia-jao/agenda-service/pkg/types"
)

func makeAppointment(id int64, start, end types.TimeString, status AppointmentStatus) *Appointment {
	return &Appointment{
		ID:        id,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func TestFindConflict(t *testing.T) {
	existing := []*Appointment{
		makeAppointment(1, "10:00", "10:30", StatusScheduled),
		makeAppointment(2, "14:00", "15:00", StatusConfirmed),
	}

	tests := []struct {
		name         string
		start, end   types.TimeString
		excludeID    *int64
		wantConflict bool
		wantWith     int64
	}{
		{name: "exact overlap", start: "10:00", end: "10:30", wantConflict: true, wantWith: 1},
		{name: "partial overlap from the left", start: "09:45", end: "10:15", wantConflict: true, wantWith: 1},
		{name: "partial overlap from the right", start: "10:15", end: "10:45", wantConflict: true, wantWith: 1},
		{name: "candidate swallows existing", start: "13:30", end: "15:30", wantConflict: true, wantWith: 2},
		{name: "candidate inside existing", start: "14:15", end: "14:30", wantConflict: true, wantWith: 2},
		{name: "back to back before", start: "09:30", end: "10:00", wantConflict: false},
		{name: "back to back after", start: "10:30", end: "11:00", wantConflict: false},
		{name: "free gap", start: "11:00", end: "12:00", wantConflict: false},
		{name: "excluded from check", start: "10:00", end: "10:30", excludeID: ptrInt64(1), wantConflict: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindConflict(tt.start, tt.end, existing, tt.excludeID)
			assert.Equal(t, tt.wantConflict, result.Conflict)
			if tt.wantConflict {
				assert.Equal(t, tt.wantWith, result.ConflictWith.ID)
			}
		})
	}
}

func TestFindConflict_SkipsCancelled(t *testing.T) {
	existing := []*Appointment{
		makeAppointment(1, "10:00", "10:30", StatusCancelled),
	}

	result := FindConflict("10:00", "10:30", existing, nil)
	assert.False(t, result.Conflict)
}

func TestFindConflict_DefaultsMissingEndTime(t *testing.T) {
	// Запись без horario_fim занимает 30 минут
	existing := []*Appointment{
		makeAppointment(1, "10:00", "", StatusScheduled),
	}

	assert.True(t, FindConflict("10:15", "10:45", existing, nil).Conflict)
	assert.False(t, FindConflict("10:30", "11:00", existing, nil).Conflict)
}

func ptrInt64(v int64) *int64 {
	return &v
}
