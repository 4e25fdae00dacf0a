package http_handlers

import (
	"net/http"

	"github.com/medibook/backend/internal/application/auth"
	"github.com/medibook/backend/internal/domain"
	"github.com/medibook/backend/internal/logger"
	"github.com/medibook/backend/internal/transport/http/dto"
	"github.com/medibook/backend/internal/transport/http/middleware"
	"github.com/medibook/backend/internal/transport/http/response"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Signup handles POST /api/auth/signup. The account is created but no token
// is issued; the client logs in afterwards.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, err := h.svc.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("user_id", u.ID).
		Str("email", u.Email).
		Msg("user_signed_up")

	response.Created(w, dto.SignupResponse{Message: "User created successfully"})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		middleware.LoginAttemptsTotal.WithLabelValues(domain.Code(err)).Inc()
		response.WriteError(w, r, err)
		return
	}
	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()

	logger.WithCtx(r.Context()).Info().
		Str("user_id", res.User.ID).
		Msg("user_logged_in")

	response.OK(w, dto.LoginResponse{
		Token: res.Token,
		Role:  res.User.Role,
		Email: res.User.Email,
		Name:  res.User.Name,
	})
}

// Logout handles POST /api/auth/logout (authenticated).
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	if err := h.svc.Logout(r.Context(), userID); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.LogoutResponse{Message: "Logged out"})
}

// Me handles GET /api/auth/me (authenticated).
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, domain.ErrTokenInvalid())
		return
	}

	u, err := h.svc.GetUserByID(r.Context(), userID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.MeResponse{User: dto.ToUserView(u)})
}
