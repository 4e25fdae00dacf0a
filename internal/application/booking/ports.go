package booking

import (
	"context"

	"github.com/medibook/backend/internal/domain"
)

/*
DoctorRepo
----------
Catalog port. The catalog is seeded at startup; the service only reads it.
*/
type DoctorRepo interface {
	List(ctx context.Context) ([]domain.Doctor, error)
	GetByID(ctx context.Context, id string) (domain.Doctor, error)
	ReplaceAll(ctx context.Context, docs []domain.Doctor) error
}

/*
AppointmentRepo
---------------
Single-record CRUD, matching the store's atomicity guarantees.
*/
type AppointmentRepo interface {
	Create(ctx context.Context, a domain.Appointment) (domain.Appointment, error)
	GetByID(ctx context.Context, id string) (domain.Appointment, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error)
	List(ctx context.Context) ([]domain.Appointment, error)
	Delete(ctx context.Context, id string) error
}

/*
EventPublisher
--------------
Publishes booking events to RabbitMQ. Downstream consumers (notifications)
subscribe; this service never calls them directly.
*/
type EventPublisher interface {
	PublishAppointmentBooked(ctx context.Context, evt AppointmentEvent) error
	PublishAppointmentCancelled(ctx context.Context, evt AppointmentEvent) error
}

type AppointmentEvent struct {
	AppointmentID string `json:"appointment_id"`
	DoctorID      string `json:"doctor_id"`
	UserID        string `json:"user_id"`
	Date          string `json:"date"`
}
