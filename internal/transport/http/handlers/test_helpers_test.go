package http_handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medibook/backend/internal/application/auth"
	"github.com/medibook/backend/internal/application/booking"
	"github.com/medibook/backend/internal/domain"
	"github.com/medibook/backend/internal/infrastructure/memory"
	"github.com/medibook/backend/internal/infrastructure/security"
	"github.com/medibook/backend/internal/transport/http/middleware"
	"github.com/medibook/backend/internal/transport/http/response"
)

// newAuthStack wires the auth service against the in-memory repo and real
// crypto so handler tests cover the same path production takes.
func newAuthStack(t *testing.T) (*auth.Service, *memory.UserRepo) {
	t.Helper()

	users := memory.NewUserRepo()
	hasher := security.NewBcryptHasher(4) // low cost keeps tests fast
	signer := security.NewJWTSigner("test-secret", "medibook")
	svc := auth.NewService(users, hasher, signer, auth.Config{AccessTTL: time.Hour})
	return svc, users
}

func newBookingStack(t *testing.T) (*booking.Service, *memory.DoctorRepo, *memory.AppointmentRepo) {
	t.Helper()

	doctors := memory.NewDoctorRepo()
	appts := memory.NewAppointmentRepo()
	svc := booking.NewService(doctors, appts, memory.NewNoopPublisher())
	return svc, doctors, appts
}

func mustJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

func mustReadJSON(t *testing.T, r io.Reader, out any) {
	t.Helper()

	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode json failed; body=%s err=%v", string(raw), err)
	}
}

// readErrCode decodes the error envelope and returns its code.
func readErrCode(t *testing.T, r io.Reader) string {
	t.Helper()

	var body response.ErrorBody
	mustReadJSON(t, r, &body)
	if body.Error.Code == "" {
		t.Fatalf("expected an error envelope, got %+v", body)
	}
	return body.Error.Code
}

func withUserCtx(req *http.Request, userID, role string) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), userID, role))
}

func withURLParam(req *http.Request, key, val string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, val)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// mustSignup registers a user and returns the stored record.
func mustSignup(t *testing.T, svc *auth.Service, name, email, password string) domain.User {
	t.Helper()

	u, err := svc.Signup(context.Background(), name, email, password)
	if err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}
	return u
}
