package middleware

import (
	"context"
	"net/http"

	"github.com/grovebook/mentor-sessions/internal/domain"
	"github.com/grovebook/mentor-sessions/internal/http/response"
	"github.com/grovebook/mentor-sessions/internal/service"
	"github.com/grovebook/mentor-sessions/pkg/logger"
)

type ctxKey string

const CtxIdentity ctxKey = "identity"

// CookieName is the session cookie shared with the web frontend.
const CookieName = "ms_session"

type SessionMiddleware struct {
	Auth service.AuthService
}

func NewSessionMiddleware(auth service.AuthService) *SessionMiddleware {
	return &SessionMiddleware{Auth: auth}
}

// WithIdentity resolves the session cookie, if any, and attaches the
// caller's identity to the request context. Requests without a valid
// session pass through anonymously; role enforcement is RequireRole's job.
func (m *SessionMiddleware) WithIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(CookieName)
		if err != nil || c.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		ident, err := m.Auth.Identify(r.Context(), c.Value)
		if err != nil {
			logger.ErrorContext(r.Context(), "failed to resolve session", "error", err)
			response.InternalError(w, "internal error")
			return
		}
		if ident == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), CtxIdentity, ident)
		ctx = context.WithValue(ctx, logger.UserIDKey, ident.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects anonymous callers with 401 and wrong-role
// callers with 403.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := Identity(r)
			if ident == nil {
				response.Unauthorized(w, "authentication required")
				return
			}
			if ident.Role != role {
				response.Forbidden(w, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireIdentity rejects anonymous callers regardless of role.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Identity(r) == nil {
			response.Unauthorized(w, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func Identity(r *http.Request) *domain.Identity {
	v := r.Context().Value(CtxIdentity)
	if v == nil {
		return nil
	}
	return v.(*domain.Identity)
}
