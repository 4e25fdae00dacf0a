package middleware

import (
	"net/http"

	"github.com/google/uuid"

	appctx "github.com/medibook/backend/internal/pkg/context"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID propagates an incoming X-Request-Id or mints one, echoing it on
// the response and storing it in context for logs and error bodies.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, reqID)

		ctx := appctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
