package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/medibook/backend/internal/domain"
)

type UserRepo struct {
	mu      sync.RWMutex
	byID    map[string]domain.User
	byEmail map[string]string // email -> userID
}

func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:    make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return r.byID[id], nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (r *UserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}

	// ID should already be set by the service; but be defensive.
	if u.ID == "" {
		return domain.User{}, domain.ErrInternal(nil)
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
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	r.byID[u.ID] = u
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		users = append(users, u)
	}
	sortUsers(users)
	return users, nil
}

func (r *UserRepo) ListOnline(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := []domain.User{}
	for _, u := range r.byID {
		if u.IsLoggedIn {
			users = append(users, u)
		}
	}
	sortUsers(users)
	return users, nil
}

func sortUsers(users []domain.User) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
}

func (r *UserRepo) SetStatus(ctx context.Context, userID string, status string) error {
	if !domain.IsValidStatus(status) {
		return domain.ErrInvalidStatus(status)
	}
	return r.update(userID, func(u *domain.User) {
		u.Status = status
	})
}

func (r *UserRepo) SetRole(ctx context.Context, userID string, role string) error {
	if !domain.IsValidRole(role) {
		return domain.ErrInvalidRole(role)
	}
	return r.update(userID, func(u *domain.User) {
		u.Role = role
	})
}

func (r *UserRepo) SetLoggedIn(ctx context.Context, userID string, loggedIn bool) error {
	return r.update(userID, func(u *domain.User) {
		u.IsLoggedIn = loggedIn
	})
}

func (r *UserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	if !domain.IsValidRole(role) {
		return 0, domain.ErrInvalidRole(role)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, u := range r.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *UserRepo) GetTokenVersion(ctx context.Context, userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[userID]
	if !ok {
		return 0, domain.ErrUserNotFound()
	}
	return u.TokenVersion, nil
}

func (r *UserRepo) BumpTokenVersion(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return 0, domain.ErrUserNotFound()
	}
	u.TokenVersion++
	u.UpdatedAt = time.Now()
	r.byID[userID] = u
	return u.TokenVersion, nil
}

func (r *UserRepo) update(userID string, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	fn(&u)
	u.UpdatedAt = time.Now()
	r.byID[userID] = u
	return nil
}
