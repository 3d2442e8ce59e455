package middleware

import (
	"context"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/grovebook/mentor-sessions/pkg/logger"
)

// LogContext copies the chi request id into the logger's context keys
// so every log line written during the request carries it.
func LogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := chimw.GetReqID(r.Context()); reqID != "" {
			ctx := context.WithValue(r.Context(), logger.RequestIDKey, reqID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
