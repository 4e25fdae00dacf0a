package http_handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestHealthz_OK(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler(nil)
	rr := httptest.NewRecorder()

	h.Healthz(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var body map[string]string
	mustReadJSON(t, rr.Body, &body)
	if body["status"] != "ok" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestReadyz_DBReachable_Ready(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectPing()

	h := NewHealthHandler(db)
	rr := httptest.NewRecorder()

	h.Readyz(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var body map[string]string
	mustReadJSON(t, rr.Body, &body)
	if body["status"] != "ready" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestReadyz_DBDown_Unavailable(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	h := NewHealthHandler(db)
	rr := httptest.NewRecorder()

	h.Readyz(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d body=%s", rr.Code, rr.Body.String())
	}

	var body map[string]string
	mustReadJSON(t, rr.Body, &body)
	if body["status"] != "unavailable" {
		t.Fatalf("unexpected body %+v", body)
	}
}
