package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/medibook/backend/internal/domain"
)

const appointmentColumns = `id, doctor_id, user_id, date, created_at`

type AppointmentRepo struct {
	db *sql.DB
}

func NewAppointmentRepo(db *sql.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func scanAppointment(sc interface{ Scan(...any) error }) (domain.Appointment, error) {
	var a domain.Appointment
	err := sc.Scan(&a.ID, &a.DoctorID, &a.UserID, &a.Date, &a.CreatedAt)
	return a, err
}

func (r *AppointmentRepo) Create(ctx context.Context, a domain.Appointment) (domain.Appointment, error) {
	if a.ID == "" {
		return domain.Appointment{}, domain.ErrMissingField("id")
	}

	const q = `
INSERT INTO appointments (id, doctor_id, user_id, date)
VALUES ($1,$2,$3,$4)
RETURNING ` + appointmentColumns + `;
`
	created, err := scanAppointment(r.db.QueryRowContext(ctx, q, a.ID, a.DoctorID, a.UserID, a.Date))
	if err != nil {
		return domain.Appointment{}, domain.ErrDBUnavailable(err)
	}
	return created, nil
}

func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (domain.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Appointment{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + appointmentColumns + `
FROM appointments
WHERE id = $1
LIMIT 1;
`
	a, err := scanAppointment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Appointment{}, domain.ErrAppointmentNotFound()
		}
		return domain.Appointment{}, domain.ErrDBUnavailable(err)
	}
	return a, nil
}

func (r *AppointmentRepo) ListByUser(ctx context.Context, userID string) ([]domain.Appointment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrMissingField("user_id")
	}

	const q = `
SELECT ` + appointmentColumns + `
FROM appointments
WHERE user_id = $1
ORDER BY created_at;
`
	return r.queryAppointments(ctx, q, userID)
}

func (r *AppointmentRepo) List(ctx context.Context) ([]domain.Appointment, error) {
	const q = `
SELECT ` + appointmentColumns + `
FROM appointments
ORDER BY created_at;
`
	return r.queryAppointments(ctx, q)
}

func (r *AppointmentRepo) queryAppointments(ctx context.Context, q string, args ...any) ([]domain.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	appts := []domain.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		appts = append(appts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return appts, nil
}

func (r *AppointmentRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.ErrMissingField("id")
	}

	const q = `DELETE FROM appointments WHERE id = $1;`

	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAppointmentNotFound()
	}
	return nil
}
