package domain

import "time"

// Client is a barbershop client record. Appointments may reference a client
// by id or carry free-text name/phone when no record exists yet.
type Client struct {
	ID        int64
	Name      string
	Phone     string // canonical 13-digit form, may be empty
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service is an entry of the service catalog (corte, barba, ...).
type Service struct {
	ID              int64
	Name            string
	Category        string
	BasePrice       float64
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
}
