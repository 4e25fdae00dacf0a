package postgres

import "time"

type userRow struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	Status       string
	IsLoggedIn   bool
	TokenVersion int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
