package domain

import (
	"time"

	"github.com/barbearia-jao/agenda-service/pkg/types"
)

// Window is a single open interval of the business day.
type Window struct {
	Name  string // "manha" / "tarde"
	Open  types.TimeString
	Close types.TimeString
}

// WeekSchedule maps weekdays to their open windows. A day with no windows
// is closed.
type WeekSchedule map[time.Weekday][]Window

// DefaultWeekSchedule рабочие часы барбершопа. Статичны и не хранятся в БД:
// закрыто в воскресенье и понедельник, обеденный перерыв 12:00-13:00.
func DefaultWeekSchedule() WeekSchedule {
	return WeekSchedule{
		time.Tuesday: {
			{Name: "manha", Open: "09:00", Close: "12:00"},
			{Name: "tarde", Open: "13:00", Close: "19:00"},
		},
		time.Wednesday: {
			{Name: "manha", Open: "09:00", Close: "12:00"},
			{Name: "tarde", Open: "13:00", Close: "19:00"},
		},
		time.Thursday: {
			{Name: "manha", Open: "09:00", Close: "12:00"},
			{Name: "tarde", Open: "13:00", Close: "19:00"},
		},
		time.Friday: {
			{Name: "manha", Open: "08:00", Close: "12:00"},
			{Name: "tarde", Open: "13:00", Close: "19:00"},
		},
		time.Saturday: {
			{Name: "manha", Open: "08:00", Close: "12:00"},
			{Name: "tarde", Open: "13:00", Close: "17:00"},
		},
	}
}

// WindowsFor returns the open windows for the date's weekday.
func (s WeekSchedule) WindowsFor(date time.Time) []Window {
	return s[date.Weekday()]
}

// IsClosed reports whether the shop is closed on the date.
func (s WeekSchedule) IsClosed(date time.Time) bool {
	return len(s.WindowsFor(date)) == 0
}
