package models

import "time"

// Account captures an authenticated identity as stored. PasswordHash never leaves the service.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
