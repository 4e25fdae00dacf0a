package memory

import (
	"context"

	"github.com/medibook/backend/internal/application/booking"
	"github.com/medibook/backend/internal/logger"
)

// NoopPublisher stands in for RabbitMQ in dev and tests.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishAppointmentBooked(ctx context.Context, evt booking.AppointmentEvent) error {
	logger.WithCtx(ctx).Debug().
		Str("appointment_id", evt.AppointmentID).
		Str("doctor_id", evt.DoctorID).
		Msg("noop-pub: appointment booked")
	return nil
}

func (p *NoopPublisher) PublishAppointmentCancelled(ctx context.Context, evt booking.AppointmentEvent) error {
	logger.WithCtx(ctx).Debug().
		Str("appointment_id", evt.AppointmentID).
		Str("doctor_id", evt.DoctorID).
		Msg("noop-pub: appointment cancelled")
	return nil
}
