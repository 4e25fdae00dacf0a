package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/medibook/backend/internal/domain"
)

const doctorColumns = `id, name, specialization, email, phone, experience, consultation_fee, availability, rating, is_active, created_at, updated_at`

type DoctorRepo struct {
	db *sql.DB
}

func NewDoctorRepo(db *sql.DB) *DoctorRepo {
	return &DoctorRepo{db: db}
}

func scanDoctor(sc interface{ Scan(...any) error }) (domain.Doctor, error) {
	var d domain.Doctor
	err := sc.Scan(
		&d.ID,
		&d.Name,
		&d.Specialization,
		&d.Email,
		&d.Phone,
		&d.Experience,
		&d.ConsultationFee,
		&d.Availability,
		&d.Rating,
		&d.IsActive,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func (r *DoctorRepo) List(ctx context.Context) ([]domain.Doctor, error) {
	const q = `
SELECT ` + doctorColumns + `
FROM doctors
WHERE is_active = TRUE
ORDER BY name;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	docs := []domain.Doctor{}
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return docs, nil
}

func (r *DoctorRepo) GetByID(ctx context.Context, id string) (domain.Doctor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Doctor{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + doctorColumns + `
FROM doctors
WHERE id = $1
LIMIT 1;
`
	d, err := scanDoctor(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.Doctor{}, domain.ErrDoctorNotFound()
		}
		return domain.Doctor{}, domain.ErrDBUnavailable(err)
	}
	return d, nil
}

// ReplaceAll swaps the catalog in one transaction. Used by the startup seed.
func (r *DoctorRepo) ReplaceAll(ctx context.Context, docs []domain.Doctor) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM doctors;`); err != nil {
		return domain.ErrDBUnavailable(err)
	}

	const ins = `
INSERT INTO doctors (id, name, specialization, email, phone, experience, consultation_fee, availability, rating, is_active)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10);
`
	for _, d := range docs {
		if _, err := tx.ExecContext(ctx, ins,
			d.ID, d.Name, d.Specialization, d.Email, d.Phone,
			d.Experience, d.ConsultationFee, d.Availability, d.Rating, d.IsActive,
		); err != nil {
			return domain.ErrDBUnavailable(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}
