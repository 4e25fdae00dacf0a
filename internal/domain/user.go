package domain

import "time"

// DefaultName is used when signup does not supply a display name.
const DefaultName = "Unnamed User"

type User struct {
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
