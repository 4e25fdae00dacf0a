package auth

import (
	"context"
	"strings"

	"github.com/medibook/backend/internal/domain"
)

// Login authenticates a user and issues an access token carrying the account's
// role and current token version.
//
// Unknown email is reported as user_not_found (404), matching the product's
// client contract. Blocked accounts cannot log in.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" {
		return LoginResult{}, domain.ErrMissingField("email")
	}
	if password == "" {
		return LoginResult{}, domain.ErrMissingField("password")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return LoginResult{}, domain.ErrInvalidCredentials()
	}

	if u.Status == string(domain.StatusBlocked) {
		return LoginResult{}, domain.ErrAccountBlocked()
	}

	ver, err := s.users.GetTokenVersion(ctx, u.ID)
	if err != nil {
		return LoginResult{}, err
	}

	token, err := s.signer.SignAccessToken(u.ID, u.Role, ver, s.accessTTL)
	if err != nil {
		return LoginResult{}, err
	}

	// Presence flag only. Best-effort: a failed update must not fail login.
	if err := s.users.SetLoggedIn(ctx, u.ID, true); err == nil {
		u.IsLoggedIn = true
	}

	return LoginResult{User: u, Token: token}, nil
}

// Logout clears the presence flag. Idempotent; the token itself stays valid
// until expiry or a version bump.
func (s *Service) Logout(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return domain.ErrMissingField("user_id")
	}
	return s.users.SetLoggedIn(ctx, userID, false)
}
