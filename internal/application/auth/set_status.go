package auth

import (
	"context"
	"strings"

	"github.com/medibook/backend/internal/domain"
)

// SetUserStatus moves a target account between active and blocked.
// Hard rules enforced here (not in handlers):
// - Admin only
// - Nobody can block/unblock themselves
// - Blocking revokes every outstanding token (version bump)
func (s *Service) SetUserStatus(ctx context.Context, actorID, actorRole, targetUserID, newStatus string) error {
	const action = "admin.set_user_status"

	actorID = strings.TrimSpace(actorID)
	actorRole = strings.TrimSpace(actorRole)
	targetUserID = strings.TrimSpace(targetUserID)
	newStatus = strings.TrimSpace(newStatus)

	audit := func(result string, err error, extra map[string]string) {
		fields := map[string]string{
			"actor_id":   actorID,
			"actor_role": actorRole,
			"target_id":  targetUserID,
			"result":     result,
		}
		if err != nil {
			fields["error_code"] = domainCode(err)
		}
		for k, v := range extra {
			fields[k] = v
		}
		s.audit(action, fields)
	}

	// --- input validation, before any mutation ---
	if targetUserID == "" {
		err := domain.ErrMissingField("user_id")
		audit("error", err, nil)
		return err
	}
	if newStatus == "" {
		err := domain.ErrMissingField("status")
		audit("error", err, nil)
		return err
	}
	if !domain.IsValidStatus(newStatus) {
		err := domain.ErrInvalidStatus(newStatus)
		audit("error", err, nil)
		return err
	}

	// --- RBAC: admin only (defense in depth) ---
	if !domain.IsValidRole(actorRole) {
		err := domain.ErrForbidden()
		audit("error", err, nil)
		return err
	}
	if domain.RoleRank(actorRole) < domain.RoleRank(string(domain.RoleAdmin)) {
		err := domain.ErrInsufficientRole(string(domain.RoleAdmin))
		audit("error", err, map[string]string{"required_role": string(domain.RoleAdmin)})
		return err
	}

	if actorID != "" && actorID == targetUserID {
		err := domain.ErrCannotModerateSelf()
		audit("error", err, nil)
		return err
	}

	target, err := s.users.GetByID(ctx, targetUserID)
	if err != nil {
		audit("error", err, nil)
		return err
	}

	if err := s.users.SetStatus(ctx, targetUserID, newStatus); err != nil {
		audit("error", err, nil)
		return err
	}

	if newStatus == string(domain.StatusBlocked) {
		// Tokens carry the version they were issued with; bumping makes the
		// auth gate reject them on the next request.
		if _, err := s.users.BumpTokenVersion(ctx, targetUserID); err != nil {
			audit("error", err, map[string]string{"stage": "bump_token_version"})
			return err
		}
		_ = s.users.SetLoggedIn(ctx, targetUserID, false)
	}

	audit("success", nil, map[string]string{
		"old_status": target.Status,
		"new_status": newStatus,
	})
	return nil
}
