package postgres

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/medibook/backend/internal/domain"
)

type fakeSeederHasher struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (h *fakeSeederHasher) Hash(pw string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	if h.err != nil {
		return "", h.err
	}
	return "HASH(" + pw + ")", nil
}

type fakeSeederUserRepo struct {
	mu      sync.Mutex
	created []domain.User
	errOnce error
	errCnt  int
}

func (r *fakeSeederUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.errOnce != nil && r.errCnt == 0 {
		r.errCnt++
		return domain.User{}, r.errOnce
	}
	r.created = append(r.created, u)
	return u, nil
}

type fakeSeederDoctorRepo struct {
	mu   sync.Mutex
	docs []domain.Doctor
	err  error
}

func (r *fakeSeederDoctorRepo) ReplaceAll(ctx context.Context, docs []domain.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.docs = docs
	return nil
}

func TestSeedUsers_CreatesDevAccounts(t *testing.T) {
	t.Parallel()

	repo := &fakeSeederUserRepo{}
	hasher := &fakeSeederHasher{}

	SeedUsers(context.Background(), repo, hasher)

	if hasher.calls != 2 {
		t.Fatalf("expected hasher called twice, got %d", hasher.calls)
	}
	if len(repo.created) != 2 {
		t.Fatalf("expected 2 users created, got %d", len(repo.created))
	}

	byEmail := map[string]domain.User{}
	for _, u := range repo.created {
		if u.ID == "" || u.PasswordHash == "" {
			t.Fatalf("incomplete seed user %+v", u)
		}
		if u.Status != "active" {
			t.Fatalf("expected active status, got %q", u.Status)
		}
		byEmail[u.Email] = u
	}
	if byEmail["admin@example.com"].Role != "admin" {
		t.Fatalf("expected admin role for admin@example.com")
	}
	if byEmail["user@example.com"].Role != "user" {
		t.Fatalf("expected user role for user@example.com")
	}
}

func TestSeedUsers_IgnoresCreateErrors(t *testing.T) {
	t.Parallel()

	repo := &fakeSeederUserRepo{errOnce: errors.New("duplicate")}
	hasher := &fakeSeederHasher{}

	SeedUsers(context.Background(), repo, hasher)

	if len(repo.created) != 1 {
		t.Fatalf("expected 1 successful create after one duplicate, got %d", len(repo.created))
	}
}

func TestSeedUsers_HashFailure_SkipsAccount(t *testing.T) {
	t.Parallel()

	repo := &fakeSeederUserRepo{}
	hasher := &fakeSeederHasher{err: errors.New("hash fail")}

	SeedUsers(context.Background(), repo, hasher)

	if len(repo.created) != 0 {
		t.Fatalf("expected 0 created when hashing fails, got %d", len(repo.created))
	}
}

func TestSeedDoctors_ReplacesCatalog(t *testing.T) {
	t.Parallel()

	repo := &fakeSeederDoctorRepo{}

	if err := SeedDoctors(context.Background(), repo); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}

	if len(repo.docs) != 12 {
		t.Fatalf("expected 12 doctors, got %d", len(repo.docs))
	}
	for _, d := range repo.docs {
		if d.ID == "" || d.Name == "" || d.Specialization == "" {
			t.Fatalf("incomplete doctor %+v", d)
		}
		if d.Rating != 4.5 || !d.IsActive {
			t.Fatalf("unexpected defaults %+v", d)
		}
	}
}

func TestSeedDoctors_RepoError_Propagates(t *testing.T) {
	t.Parallel()

	repo := &fakeSeederDoctorRepo{err: domain.ErrDBUnavailable(errors.New("down"))}

	if err := SeedDoctors(context.Background(), repo); !domain.Is(err, "db_unavailable") {
		t.Fatalf("expected db_unavailable, got %v", err)
	}
}
