package domain

import "time"

// Appointment links a user to a doctor on a date. The date stays an opaque
// string: slot granularity is a frontend concern and the store never compares
// dates.
type Appointment struct {
	ID        string
	DoctorID  string
	UserID    string
	Date      string
	CreatedAt time.Time
}
