package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/medibook/backend/internal/domain"
)

const userColumns = `id, name, email, password_hash, role, status, is_logged_in, token_version, created_at, updated_at`

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ---------- helpers ----------

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scanUserRow(row *sql.Row) (userRow, error) {
	var ur userRow
	err := row.Scan(
		&ur.ID,
		&ur.Name,
		&ur.Email,
		&ur.PasswordHash,
		&ur.Role,
		&ur.Status,
		&ur.IsLoggedIn,
		&ur.TokenVersion,
		&ur.CreatedAt,
		&ur.UpdatedAt,
	)
	return ur, err
}

func toDomainUser(ur userRow) domain.User {
	return domain.User{
		ID:           ur.ID,
		Name:         ur.Name,
		Email:        ur.Email,
		PasswordHash: ur.PasswordHash,
		Role:         ur.Role,
		Status:       ur.Status,
		IsLoggedIn:   ur.IsLoggedIn,
		TokenVersion: ur.TokenVersion,
		CreatedAt:    ur.CreatedAt,
		UpdatedAt:    ur.UpdatedAt,
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// ---------- auth.UserRepo ----------

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE email = $1
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, email))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}

	const q = `
SELECT ` + userColumns + `
FROM users
WHERE id = $1
LIMIT 1;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if isNoRows(err) {
			return domain.User{}, domain.ErrUserNotFound()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = normalizeEmail(u.Email)
	if u.ID == "" {
		return domain.User{}, domain.ErrMissingField("id")
	}
	if u.Email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if u.PasswordHash == "" {
		return domain.User{}, domain.ErrMissingField("password_hash")
	}
	if u.Name == "" {
		u.Name = domain.DefaultName
	}
	if u.Role == "" {
		u.Role = string(domain.RoleUser)
	}
	if u.Status == "" {
		u.Status = string(domain.StatusActive)
	}

	const q = `
INSERT INTO users (id, name, email, password_hash, role, status)
VALUES ($1,$2,$3,$4,$5,$6)
RETURNING ` + userColumns + `;
`
	ur, err := scanUserRow(r.db.QueryRowContext(ctx, q,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Status,
	))
	if err != nil {
		// The unique index on email is the backstop for concurrent signups.
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return domain.User{}, domain.ErrEmailAlreadyExists()
		}
		return domain.User{}, domain.ErrDBUnavailable(err)
	}
	return toDomainUser(ur), nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at;
`
	return r.queryUsers(ctx, q)
}

func (r *UserRepo) ListOnline(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT ` + userColumns + `
FROM users
WHERE is_logged_in = TRUE
ORDER BY created_at;
`
	return r.queryUsers(ctx, q)
}

func (r *UserRepo) queryUsers(ctx context.Context, q string, args ...any) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var ur userRow
		if err := rows.Scan(
			&ur.ID,
			&ur.Name,
			&ur.Email,
			&ur.PasswordHash,
			&ur.Role,
			&ur.Status,
			&ur.IsLoggedIn,
			&ur.TokenVersion,
			&ur.CreatedAt,
			&ur.UpdatedAt,
		); err != nil {
			return nil, domain.ErrDBUnavailable(err)
		}
		users = append(users, toDomainUser(ur))
	}
	if err := rows.Err(); err != nil {
		return nil, domain.ErrDBUnavailable(err)
	}
	return users, nil
}

func (r *UserRepo) SetStatus(ctx context.Context, userID string, status string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	if !domain.IsValidStatus(status) {
		return domain.ErrInvalidStatus(status)
	}

	const q = `
UPDATE users
SET status = $2,
    updated_at = NOW()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, userID, status)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func (r *UserRepo) SetRole(ctx context.Context, userID string, role string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	if !domain.IsValidRole(role) {
		return domain.ErrInvalidRole(role)
	}

	const q = `
UPDATE users
SET role = $2,
    updated_at = NOW()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, userID, role)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func (r *UserRepo) SetLoggedIn(ctx context.Context, userID string, loggedIn bool) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}

	const q = `
UPDATE users
SET is_logged_in = $2,
    updated_at = NOW()
WHERE id = $1;
`
	res, err := r.db.ExecContext(ctx, q, userID, loggedIn)
	if err != nil {
		return domain.ErrDBUnavailable(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound()
	}
	return nil
}

func (r *UserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	role = strings.TrimSpace(role)
	if role == "" {
		return 0, domain.ErrMissingField("role")
	}
	if !domain.IsValidRole(role) {
		return 0, domain.ErrInvalidRole(role)
	}

	const q = `SELECT COUNT(1) FROM users WHERE role = $1;`

	var n int
	if err := r.db.QueryRowContext(ctx, q, role).Scan(&n); err != nil {
		return 0, domain.ErrDBUnavailable(err)
	}
	return n, nil
}

func (r *UserRepo) GetTokenVersion(ctx context.Context, userID string) (int64, error) {
	const q = `
SELECT token_version
FROM users
WHERE id = $1
`
	var ver int64
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&ver)
	if err != nil {
		if isNoRows(err) {
			return 0, domain.ErrUserNotFound()
		}
		return 0, domain.ErrDBUnavailable(err)
	}
	return ver, nil
}

func (r *UserRepo) BumpTokenVersion(ctx context.Context, userID string) (int64, error) {
	const q = `
UPDATE users
SET token_version = token_version + 1,
    updated_at = NOW()
WHERE id = $1
RETURNING token_version
`
	var newVer int64
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&newVer)
	if err != nil {
		if isNoRows(err) {
			return 0, domain.ErrUserNotFound()
		}
		return 0, domain.ErrDBUnavailable(err)
	}
	return newVer, nil
}
