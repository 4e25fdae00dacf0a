package booking

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/medibook/backend/internal/domain"
	"github.com/medibook/backend/internal/logger"
)

type Service struct {
	doctors      DoctorRepo
	appointments AppointmentRepo
	pub          EventPublisher
}

func NewService(doctors DoctorRepo, appointments AppointmentRepo, pub EventPublisher) *Service {
	return &Service{
		doctors:      doctors,
		appointments: appointments,
		pub:          pub,
	}
}

func (s *Service) ListDoctors(ctx context.Context) ([]domain.Doctor, error) {
	return s.doctors.List(ctx)
}

// Book creates an appointment for userID with the given doctor. The doctor
// must exist and be active.
func (s *Service) Book(ctx context.Context, userID, doctorID, date string) (domain.Appointment, error) {
	userID = strings.TrimSpace(userID)
	doctorID = strings.TrimSpace(doctorID)
	date = strings.TrimSpace(date)

	if userID == "" {
		return domain.Appointment{}, domain.ErrMissingField("user_id")
	}
	if doctorID == "" {
		return domain.Appointment{}, domain.ErrMissingField("doctor_id")
	}
	if date == "" {
		return domain.Appointment{}, domain.ErrMissingField("date")
	}

	doc, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		return domain.Appointment{}, err
	}
	if !doc.IsActive {
		return domain.Appointment{}, domain.ErrDoctorNotFound()
	}

	a := domain.Appointment{
		ID:       uuid.NewString(),
		DoctorID: doctorID,
		UserID:   userID,
		Date:     date,
	}

	created, err := s.appointments.Create(ctx, a)
	if err != nil {
		return domain.Appointment{}, err
	}

	// Best-effort: the booking is committed, a dead broker must not undo it.
	if err := s.pub.PublishAppointmentBooked(ctx, AppointmentEvent{
		AppointmentID: created.ID,
		DoctorID:      created.DoctorID,
		UserID:        created.UserID,
		Date:          created.Date,
	}); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).
			Str("appointment_id", created.ID).
			Msg("appointment.booked publish failed")
	}

	return created, nil
}

// Cancel deletes an appointment. Owners may cancel their own; admins may
// cancel any.
func (s *Service) Cancel(ctx context.Context, actorID, actorRole, appointmentID string) error {
	appointmentID = strings.TrimSpace(appointmentID)
	if appointmentID == "" {
		return domain.ErrMissingField("id")
	}

	a, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return err
	}

	if a.UserID != actorID && domain.RoleRank(actorRole) < domain.RoleRank(string(domain.RoleAdmin)) {
		return domain.ErrForbidden()
	}

	if err := s.appointments.Delete(ctx, appointmentID); err != nil {
		return err
	}

	if err := s.pub.PublishAppointmentCancelled(ctx, AppointmentEvent{
		AppointmentID: a.ID,
		DoctorID:      a.DoctorID,
		UserID:        a.UserID,
		Date:          a.Date,
	}); err != nil {
		logger.WithCtx(ctx).Warn().Err(err).
			Str("appointment_id", a.ID).
			Msg("appointment.cancelled publish failed")
	}

	return nil
}

// ListFor returns the appointments visible to the caller: admins see all,
// users see their own.
func (s *Service) ListFor(ctx context.Context, actorID, actorRole string) ([]domain.Appointment, error) {
	if domain.RoleRank(actorRole) >= domain.RoleRank(string(domain.RoleAdmin)) {
		return s.appointments.List(ctx)
	}
	return s.appointments.ListByUser(ctx, actorID)
}
