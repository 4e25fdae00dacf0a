package response

import (
	"net/http"

	appctx "github.com/medibook/backend/internal/pkg/context"
)

// RequestIDFromContext extracts the request id set by the request-id middleware.
func RequestIDFromContext(r *http.Request) string {
	return appctx.RequestID(r.Context())
}
