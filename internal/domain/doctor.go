package domain

import "time"

// Doctor is a catalog entry. The catalog is seeded at startup and read-only
// from the HTTP surface.
type Doctor struct {
	ID              string
	Name            string
	Specialization  string
	Email           string
	Phone           string
	Experience      int
	ConsultationFee int
	Availability    string
	Rating          float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
