package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/medibook/backend/internal/domain"
)

// Signup creates a new account. It returns an acknowledgment only: signup does
// not log the user in.
func (s *Service) Signup(ctx context.Context, name, email, password string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	name = strings.TrimSpace(name)

	if email == "" {
		return domain.User{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return domain.User{}, domain.ErrMissingField("password")
	}
	if name == "" {
		name = domain.DefaultName
	}

	// Best-effort pre-check. Two signups racing on the same email may both
	// pass it; the unique index on users.email is the real backstop and the
	// repo maps that violation to the same conflict error.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	} else if !domain.Is(err, "user_not_found") {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, domain.ErrHashFailed(err)
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         string(domain.RoleUser),
		Status:       string(domain.StatusActive),
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, err
	}

	return created, nil
}
