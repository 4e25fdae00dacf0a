package auth

import (
	"context"
	"time"

	"github.com/medibook/backend/internal/domain"
)

/*
UserRepo
--------
Persistence port for accounts.
Only describes WHAT the auth service needs, not HOW it's stored.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListOnline(ctx context.Context) ([]domain.User, error)

	// Updates needed by business flows
	SetStatus(ctx context.Context, userID string, status string) error
	SetRole(ctx context.Context, userID string, role string) error
	SetLoggedIn(ctx context.Context, userID string, loggedIn bool) error
	CountByRole(ctx context.Context, role string) (int, error)

	// Token revocation epoch. Bumping invalidates every outstanding token.
	GetTokenVersion(ctx context.Context, userID string) (int64, error)
	BumpTokenVersion(ctx context.Context, userID string) (int64, error)
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies access tokens (JWT).
Used by service + auth middleware.
*/
type TokenClaims struct {
	UserID string
	Role   string
	Ver    int64
	Exp    time.Time
}

type TokenSigner interface {
	SignAccessToken(userID string, role string, ver int64, ttl time.Duration) (string, error)
	VerifyAccessToken(token string) (TokenClaims, error)
}
