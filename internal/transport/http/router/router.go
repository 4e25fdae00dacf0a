package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type UsersHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	ListOnline(w http.ResponseWriter, r *http.Request)
	SetStatus(w http.ResponseWriter, r *http.Request)
	SetRole(w http.ResponseWriter, r *http.Request)
}

type DoctorsHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type AppointmentsHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Book(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health       HealthHandler
	Auth         AuthHandler
	Users        UsersHandler
	Doctors      DoctorsHandler
	Appointments AppointmentsHandler

	AuthMW  func(http.Handler) http.Handler
	AdminMW func(http.Handler) http.Handler

	// Global middleware applied to every route, outermost first.
	Global []func(http.Handler) http.Handler

	// Per-route rate limits; nil entries disable the limit.
	SignupRL func(http.Handler) http.Handler
	LoginRL  func(http.Handler) http.Handler
	BookRL   func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.Users == nil {
		return nil, fmt.Errorf("nil Users handler")
	}
	if deps.Doctors == nil {
		return nil, fmt.Errorf("nil Doctors handler")
	}
	if deps.Appointments == nil {
		return nil, fmt.Errorf("nil Appointments handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.AdminMW == nil {
		return nil, fmt.Errorf("nil Admin middleware")
	}

	r := chi.NewRouter()
	for _, mw := range deps.Global {
		r.Use(mw)
	}

	r.Get("/health", deps.Health.Healthz)
	r.Get("/ready", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// --- Auth ---
		r.Route("/auth", func(r chi.Router) {
			r.With(optional(deps.SignupRL)).Post("/signup", deps.Auth.Signup)
			r.With(optional(deps.LoginRL)).Post("/login", deps.Auth.Login)
			r.With(deps.AuthMW).Post("/logout", deps.Auth.Logout)
			r.With(deps.AuthMW).Get("/me", deps.Auth.Me)
		})

		// --- Doctor catalog (public) ---
		r.Get("/doctors", deps.Doctors.List)

		// --- Appointments (authenticated) ---
		r.Route("/appointments", func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Get("/", deps.Appointments.List)
			r.With(optional(deps.BookRL)).Post("/", deps.Appointments.Book)
			r.Delete("/{id}", deps.Appointments.Cancel)
		})

		// --- Admin user management ---
		r.Route("/users", func(r chi.Router) {
			r.Use(deps.AuthMW)
			r.Use(deps.AdminMW)
			r.Get("/", deps.Users.List)
			r.Get("/online", deps.Users.ListOnline)
			r.Patch("/{id}/status", deps.Users.SetStatus)
			r.Patch("/{id}/role", deps.Users.SetRole)
		})
	})

	return r, nil
}

func optional(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}
