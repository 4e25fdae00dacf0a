package auth

import (
	"context"

	"github.com/medibook/backend/internal/domain"
)

// ListUsers returns every account. RBAC is enforced by the admin middleware;
// handlers never reach this for non-admin callers.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// ListOnlineUsers returns accounts whose presence flag is set. The flag is
// best-effort, not a session count.
func (s *Service) ListOnlineUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListOnline(ctx)
}
