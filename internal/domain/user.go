package domain

import "time"

// User is an admin dashboard account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	DisplayName  string
	CreatedAt    time.Time
}
