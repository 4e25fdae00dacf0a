package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/medibook/backend/internal/domain"
)

/*
Shared audit capture
*/

type auditEntry struct {
	action string
	fields map[string]string
}

type auditRecorder struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (a *auditRecorder) record(action string, fields map[string]string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, auditEntry{action: action, fields: fields})
}

func (a *auditRecorder) last() (auditEntry, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.entries) == 0 {
		return auditEntry{}, false
	}
	return a.entries[len(a.entries)-1], true
}

/*
Fakes for ports
*/

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]domain.User
	byEmail map[string]domain.User

	// injected errors (if set, method returns error)
	getByIDErr     error
	getByEmailErr  error
	createErr      error
	setStatusErr   error
	setRoleErr     error
	setLoggedInErr error
	countByRoleErr error
	getVerErr      error
	bumpVerErr     error

	// record calls
	setStatuses []struct{ id, status string }
	setRoles    []struct{ id, role string }
	loggedIn    []struct {
		id string
		on bool
	}
	bumpedIDs []string

	versions map[string]int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:     map[string]domain.User{},
		byEmail:  map[string]domain.User{},
		versions: map[string]int64{},
	}
}

func (f *fakeUserRepo) add(u domain.User) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByEmailErr != nil {
		return domain.User{}, f.getByEmailErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getByIDErr != nil {
		return domain.User{}, f.getByIDErr
	}
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound()
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return domain.User{}, f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return domain.User{}, domain.ErrEmailAlreadyExists()
	}
	f.byID[u.ID] = u
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users := []domain.User{}
	for _, u := range f.byID {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepo) ListOnline(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users := []domain.User{}
	for _, u := range f.byID {
		if u.IsLoggedIn {
			users = append(users, u)
		}
	}
	return users, nil
}

func (f *fakeUserRepo) SetStatus(ctx context.Context, userID string, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setStatusErr != nil {
		return f.setStatusErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.Status = status
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	f.setStatuses = append(f.setStatuses, struct{ id, status string }{userID, status})
	return nil
}

func (f *fakeUserRepo) SetRole(ctx context.Context, userID string, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setRoleErr != nil {
		return f.setRoleErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.Role = role
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	f.setRoles = append(f.setRoles, struct{ id, role string }{userID, role})
	return nil
}

func (f *fakeUserRepo) SetLoggedIn(ctx context.Context, userID string, on bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.setLoggedInErr != nil {
		return f.setLoggedInErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return domain.ErrUserNotFound()
	}
	u.IsLoggedIn = on
	f.byID[userID] = u
	f.byEmail[u.Email] = u
	f.loggedIn = append(f.loggedIn, struct {
		id string
		on bool
	}{userID, on})
	return nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.countByRoleErr != nil {
		return 0, f.countByRoleErr
	}
	cnt := 0
	for _, u := range f.byID {
		if u.Role == role {
			cnt++
		}
	}
	return cnt, nil
}

func (f *fakeUserRepo) GetTokenVersion(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getVerErr != nil {
		return 0, f.getVerErr
	}
	if _, ok := f.byID[userID]; !ok {
		return 0, domain.ErrUserNotFound()
	}
	return f.versions[userID], nil
}

func (f *fakeUserRepo) BumpTokenVersion(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bumpVerErr != nil {
		return 0, f.bumpVerErr
	}
	if _, ok := f.byID[userID]; !ok {
		return 0, domain.ErrUserNotFound()
	}
	f.versions[userID]++
	f.bumpedIDs = append(f.bumpedIDs, userID)
	return f.versions[userID], nil
}

type fakeHasher struct {
	hashFn    func(pw string) (string, error)
	compareFn func(hash, pw string) error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.hashFn != nil {
		return h.hashFn(password)
	}
	return "hash:" + password, nil
}

func (h *fakeHasher) Compare(hash string, password string) error {
	if h.compareFn != nil {
		return h.compareFn(hash, password)
	}
	if hash == "hash:"+password {
		return nil
	}
	return errors.New("mismatch")
}

type fakeSigner struct {
	signFn func(userID, role string, ver int64, ttl time.Duration) (string, error)
}

func (s *fakeSigner) SignAccessToken(userID string, role string, ver int64, ttl time.Duration) (string, error) {
	if s.signFn != nil {
		return s.signFn(userID, role, ver, ttl)
	}
	return fmt.Sprintf("jwt(%s,%s,%d)", userID, role, ver), nil
}

func (s *fakeSigner) VerifyAccessToken(token string) (TokenClaims, error) {
	return TokenClaims{}, nil
}

/*
Service under test
*/

func newSvcForTest() (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner, *auditRecorder) {
	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	signer := &fakeSigner{}
	audit := &auditRecorder{}

	svc := NewService(users, hasher, signer, Config{AccessTTL: time.Hour}).
		WithAudit(audit.record)

	return svc, users, hasher, signer, audit
}
