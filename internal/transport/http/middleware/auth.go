package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/medibook/backend/internal/application/auth"
	"github.com/medibook/backend/internal/domain"
)

type TokenVerifier interface {
	VerifyAccessToken(token string) (auth.TokenClaims, error)
}

type WriteErrFunc func(http.ResponseWriter, *http.Request, error)

// UserVersionReader is the minimal interface the middleware needs to validate
// that the access token has not been revoked (via token_version bump).
type UserVersionReader interface {
	GetTokenVersion(ctx context.Context, userID string) (int64, error)
}

// Auth verifies Authorization: Bearer <access_token>, validates the
// token_version, and injects the caller's identity into request context.
// Blocking a user bumps their token_version, so revoked and stale tokens
// fail here without a status lookup.
func Auth(verifier TokenVerifier, users UserVersionReader, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" {
				writeErr(w, r, domain.ErrTokenMissing())
				return
			}

			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			claims, err := verifier.VerifyAccessToken(raw)
			if err != nil {
				writeErr(w, r, err)
				return
			}

			if strings.TrimSpace(claims.UserID) == "" {
				writeErr(w, r, domain.ErrTokenInvalid())
				return
			}

			// Compare JWT "ver" against the current token_version.
			// jwt.ver < current_version means the token was revoked.
			if users != nil {
				currentVer, err := users.GetTokenVersion(r.Context(), claims.UserID)
				if err != nil {
					writeErr(w, r, err)
					return
				}
				if claims.Ver < currentVer {
					writeErr(w, r, domain.ErrTokenInvalid())
					return
				}
			}

			ctx := WithUser(r.Context(), claims.UserID, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
