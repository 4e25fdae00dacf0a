package http_handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medibook/backend/internal/application/auth"
	"github.com/medibook/backend/internal/domain"
	"github.com/medibook/backend/internal/logger"
	"github.com/medibook/backend/internal/transport/http/dto"
	"github.com/medibook/backend/internal/transport/http/middleware"
	"github.com/medibook/backend/internal/transport/http/response"
)

// UsersHandler serves the admin user-management endpoints. Routes are gated
// by the admin middleware; the service re-checks the role as well.
type UsersHandler struct {
	svc *auth.Service
}

func NewUsersHandler(svc *auth.Service) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// List handles GET /api/users.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToUserViews(users))
}

// ListOnline handles GET /api/users/online.
func (h *UsersHandler) ListOnline(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListOnlineUsers(r.Context())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.ToUserViews(users))
}

// SetStatus handles PATCH /api/users/{id}/status.
func (h *UsersHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	targetID := chi.URLParam(r, "id")

	var req dto.SetUserStatusRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.SetUserStatus(r.Context(), actorID, actorRole, targetID, req.Status); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("actor_id", actorID).
		Str("target_id", targetID).
		Str("status", req.Status).
		Msg("user_status_changed")

	response.OK(w, dto.SetUserStatusResponse{
		Message: "User status updated",
		Status:  req.Status,
	})
}

// SetRole handles PATCH /api/users/{id}/role.
func (h *UsersHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	actorID, actorRole, err := actorFromContext(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	targetID := chi.URLParam(r, "id")

	var req dto.SetUserRoleRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.SetUserRole(r.Context(), actorID, actorRole, targetID, req.Role); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("actor_id", actorID).
		Str("target_id", targetID).
		Str("role", req.Role).
		Msg("user_role_changed")

	response.OK(w, dto.SetUserRoleResponse{
		Message: "User role updated",
		Role:    req.Role,
	})
}

func actorFromContext(r *http.Request) (userID, role string, err error) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return "", "", domain.ErrTokenInvalid()
	}
	role, ok = middleware.RoleFromContext(r.Context())
	if !ok {
		return "", "", domain.ErrTokenInvalid()
	}
	return userID, role, nil
}
