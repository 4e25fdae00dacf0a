package auth

import (
	"time"

	"github.com/medibook/backend/internal/domain"
)

type Service struct {
	users  UserRepo
	hasher PasswordHasher
	signer TokenSigner

	accessTTL time.Duration
	audit     func(action string, fields map[string]string)
}

type Config struct {
	AccessTTL time.Duration
}

func NewService(users UserRepo, hasher PasswordHasher, signer TokenSigner, cfg Config) *Service {
	ttl := cfg.AccessTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Service{
		users:     users,
		hasher:    hasher,
		signer:    signer,
		accessTTL: ttl,
		audit:     func(string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// LoginResult is what the login handler returns to the client.
type LoginResult struct {
	User  domain.User
	Token string
}

func domainCode(err error) string {
	return domain.Code(err)
}
