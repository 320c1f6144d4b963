package domain

import "github.com/barbearia-jao/agenda-service/pkg/types"

// Default values
const (
	// DefaultDurationMinutes is assumed when an appointment has a start
	// time but no recorded end time (legacy rows created by the bot).
	DefaultDurationMinutes = 30

	// SlotStepMinutes is the granularity of the schedule grid.
	SlotStepMinutes = types.SlotStepMinutes
)

// Business validation constants
const (
	MinClientNameLength = 2
	MaxNotesLength      = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список статусов, участвующих в проверке конфликтов.
// Отмененные записи слот не занимают.
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusCompleted,
}
