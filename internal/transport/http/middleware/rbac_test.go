package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medibook/backend/internal/domain"
)

func runRBAC(t *testing.T, minRole, callerRole string, withCtx bool) (*writeErrRecorder, *nextRecorder) {
	t.Helper()

	we := &writeErrRecorder{}
	nx := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if withCtx {
		req = req.WithContext(WithUser(req.Context(), "u1", callerRole))
	}

	RequireAtLeast(minRole, we.fn)(nx).ServeHTTP(httptest.NewRecorder(), req)
	return we, nx
}

func TestRequireAtLeast_NoIdentity_TokenInvalid(t *testing.T) {
	we, nx := runRBAC(t, "admin", "", false)

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if !domain.Is(we.last, "token_invalid") {
		t.Fatalf("expected token_invalid, got %v", we.last)
	}
}

func TestRequireAtLeast_UnknownRole_Forbidden(t *testing.T) {
	we, nx := runRBAC(t, "admin", "superuser", true)

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if !domain.Is(we.last, "forbidden") {
		t.Fatalf("expected forbidden, got %v", we.last)
	}
}

func TestRequireAtLeast_UserBelowAdmin_InsufficientRole(t *testing.T) {
	we, nx := runRBAC(t, "admin", "user", true)

	if nx.calls != 0 {
		t.Fatalf("expected next not called")
	}
	if !domain.Is(we.last, "insufficient_role") {
		t.Fatalf("expected insufficient_role, got %v", we.last)
	}
}

func TestRequireAtLeast_AdminPasses(t *testing.T) {
	we, nx := runRBAC(t, "admin", "admin", true)

	if we.calls != 0 {
		t.Fatalf("expected no error, got %v", we.last)
	}
	if nx.calls != 1 {
		t.Fatalf("expected next called once, got %d", nx.calls)
	}
}

func TestRequireAtLeast_AdminSatisfiesUserGate(t *testing.T) {
	we, nx := runRBAC(t, "user", "admin", true)

	if we.calls != 0 {
		t.Fatalf("expected no error, got %v", we.last)
	}
	if nx.calls != 1 {
		t.Fatalf("expected next called once, got %d", nx.calls)
	}
}
