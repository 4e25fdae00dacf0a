package postgres

import (
	"context"
	"database/sql"

	"github.com/medibook/backend/internal/domain"
)

// EnsureSchema creates the tables this service owns. Statements are
// idempotent so restarts are safe.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const stmts = `
CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY,
    name          TEXT NOT NULL DEFAULT 'Unnamed User',
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role          TEXT NOT NULL DEFAULT 'user',
    status        TEXT NOT NULL DEFAULT 'active',
    is_logged_in  BOOLEAN NOT NULL DEFAULT FALSE,
    token_version BIGINT NOT NULL DEFAULT 0,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS doctors (
    id               UUID PRIMARY KEY,
    name             TEXT NOT NULL,
    specialization   TEXT NOT NULL,
    email            TEXT NOT NULL DEFAULT '',
    phone            TEXT NOT NULL DEFAULT '',
    experience       INT NOT NULL DEFAULT 5,
    consultation_fee INT NOT NULL DEFAULT 2000,
    availability     TEXT NOT NULL DEFAULT 'Mon-Fri 9AM-5PM',
    rating           DOUBLE PRECISION NOT NULL DEFAULT 4.5,
    is_active        BOOLEAN NOT NULL DEFAULT TRUE,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS appointments (
    id         UUID PRIMARY KEY,
    doctor_id  UUID NOT NULL,
    user_id    UUID NOT NULL,
    date       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_appointments_user_id ON appointments (user_id);
`
	if _, err := db.ExecContext(ctx, stmts); err != nil {
		return domain.ErrDBUnavailable(err)
	}
	return nil
}
