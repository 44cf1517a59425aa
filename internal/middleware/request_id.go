package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"cg-backend/pkg/logger"
)

type contextKey string

// RequestIDContextKey is the context key for the request ID
const RequestIDContextKey contextKey = "request_id"

// RequestID tags every request with a unique id, echoed in the
// X-Request-ID response header.
func RequestID(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			r = r.WithContext(ctx)

			w.Header().Set("X-Request-ID", requestID)

			log.WithField("request_id", requestID).Debug("Request started")

			next.ServeHTTP(w, r)
		})
	}
}

// GetRequestID extracts the request ID from a context
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDContextKey).(string); ok {
		return id
	}
	return ""
}
