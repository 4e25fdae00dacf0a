package http_handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medibook/backend/internal/transport/http/dto"
)

func TestSignup_Created(t *testing.T) {
	t.Parallel()

	svc, users := newAuthStack(t)
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", mustJSONBody(t, dto.SignupRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "Password123!",
	}))
	rr := httptest.NewRecorder()

	h.Signup(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var body dto.SignupResponse
	mustReadJSON(t, rr.Body, &body)
	if body.Message != "User created successfully" {
		t.Fatalf("unexpected message %q", body.Message)
	}

	if _, err := users.GetByEmail(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("expected user stored: %v", err)
	}
}

func TestSignup_DuplicateEmail_Conflict(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthStack(t)
	h := NewAuthHandler(svc)
	mustSignup(t, svc, "Alice", "alice@example.com", "Password123!")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", mustJSONBody(t, dto.SignupRequest{
		Name:     "Imposter",
		Email:    "ALICE@example.com", // same address, different case
		Password: "Password123!",
	}))
	rr := httptest.NewRecorder()

	h.Signup(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := readErrCode(t, rr.Body); code != "email_already_exists" {
		t.Fatalf("expected email_already_exists, got %q", code)
	}
}

func TestSignup_InvalidEmail_BadRequest(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthStack(t)
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", mustJSONBody(t, dto.SignupRequest{
		Name:     "Alice",
		Email:    "not-an-email",
		Password: "Password123!",
	}))
	rr := httptest.NewRecorder()

	h.Signup(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := readErrCode(t, rr.Body); code != "invalid_field" {
		t.Fatalf("expected invalid_field, got %q", code)
	}
}

func TestSignup_MalformedJSON_BadRequest(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthStack(t)
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", nil)
	rr := httptest.NewRecorder()

	h.Signup(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLogin_Success_FlatBody(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthStack(t)
	h := NewAuthHandler(svc)
	mustSignup(t, svc, "Alice", "alice@example.com", "Password123!")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", mustJSONBody(t, dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "Password123!",
	}))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var body dto.LoginResponse
	mustReadJSON(t, rr.Body, &body)
	if body.Token == "" {
		t.Fatalf("expected a token")
	}
	if body.Role != "user" || body.Email != "alice@example.com" || body.Name != "Alice" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestLogin_UnknownEmail_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthStack(t)
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", mustJSONBody(t, dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "Password123!",
	}))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := readErrCode(t, rr.Body); code != "user_not_found" {
		t.Fatalf("expected user_not_found, got %q", code)
	}
}

func TestLogin_WrongPassword_Unauthorized(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthStack(t)
	h := NewAuthHandler(svc)
	mustSignup(t, svc, "Alice", "alice@example.com", "Password123!")

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", mustJSONBody(t, dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	}))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := readErrCode(t, rr.Body); code != "invalid_credentials" {
		t.Fatalf("expected invalid_credentials, got %q", code)
	}
}

func TestLogin_BlockedAccount_Forbidden(t *testing.T) {
	t.Parallel()

	svc, users := newAuthStack(t)
	h := NewAuthHandler(svc)
	u := mustSignup(t, svc, "Alice", "alice@example.com", "Password123!")
	if err := users.SetStatus(context.Background(), u.ID, "blocked"); err != nil {
		t.Fatalf("block: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", mustJSONBody(t, dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "Password123!",
	}))
	rr := httptest.NewRecorder()

	h.Login(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
	if code := readErrCode(t, rr.Body); code != "account_blocked" {
		t.Fatalf("expected account_blocked, got %q", code)
	}
}

func TestLogout_ClearsPresence(t *testing.T) {
	t.Parallel()

	svc, users := newAuthStack(t)
	h := NewAuthHandler(svc)
	u := mustSignup(t, svc, "Alice", "alice@example.com", "Password123!")
	if _, err := svc.Login(context.Background(), "alice@example.com", "Password123!"); err != nil {
		t.Fatalf("login: %v", err)
	}

	req := withUserCtx(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), u.ID, "user")
	rr := httptest.NewRecorder()

	h.Logout(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	stored, err := users.GetByID(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.IsLoggedIn {
		t.Fatalf("expected presence cleared")
	}
}

func TestLogout_NoIdentity_Unauthorized(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthStack(t)
	h := NewAuthHandler(svc)

	rr := httptest.NewRecorder()
	h.Logout(rr, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestMe_ReturnsSanitizedUser(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthStack(t)
	h := NewAuthHandler(svc)
	u := mustSignup(t, svc, "Alice", "alice@example.com", "Password123!")

	req := withUserCtx(httptest.NewRequest(http.MethodGet, "/api/auth/me", nil), u.ID, "user")
	rr := httptest.NewRecorder()

	h.Me(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var body dto.MeResponse
	mustReadJSON(t, rr.Body, &body)
	if body.User.ID != u.ID || body.User.Email != "alice@example.com" {
		t.Fatalf("unexpected user %+v", body.User)
	}
}
