package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"

	"github.com/grovebook/mentor-sessions/internal/domain"
	"github.com/grovebook/mentor-sessions/internal/platform/auth"
	"github.com/grovebook/mentor-sessions/internal/platform/sessions"
	"github.com/grovebook/mentor-sessions/internal/repo"
	"github.com/grovebook/mentor-sessions/pkg/events"
	"github.com/grovebook/mentor-sessions/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterReq) (*domain.User, error)

	// Login verifies credentials and opens a session. The returned token
	// is the raw cookie value; only its hash is stored.
	Login(ctx context.Context, req *domain.LoginReq) (*domain.User, string, time.Time, error)

	Logout(ctx context.Context, token string) error

	// Identify resolves a session token to the caller's identity.
	// Returns (nil, nil) for a missing, expired or unknown session.
	Identify(ctx context.Context, token string) (*domain.Identity, error)
}

type authService struct {
	users      repo.UserStore
	sessions   sessions.Store
	bus        events.Publisher
	secret     string
	sessionTTL time.Duration
}

func NewAuthService(users repo.UserStore, store sessions.Store, bus events.Publisher, secret string, ttl time.Duration) AuthService {
	return &authService{
		users:      users,
		sessions:   store,
		bus:        bus,
		secret:     secret,
		sessionTTL: ttl,
	}
}

func (s *authService) Register(ctx context.Context, req *domain.RegisterReq) (*domain.User, error) {
	role, ok := domain.ParseRole(req.Role)
	if !ok {
		return nil, domain.Validation("invalid role")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.Storage("check email", err)
	}
	if existing != nil {
		return nil, domain.Conflict("email already registered")
	}

	hash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, domain.Storage("hash password", err)
	}

	u := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		DisplayName:  req.DisplayName,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, domain.Storage("create user", err)
	}

	if err := s.bus.Publish(ctx, events.UserRegistered, events.UserRegisteredEvent{
		UserID:    u.ID,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}); err != nil {
		logger.ErrorContext(ctx, "failed to publish user registered event", "error", err, "user_id", u.ID)
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, req *domain.LoginReq) (*domain.User, string, time.Time, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, domain.Storage("load user", err)
	}
	if u == nil {
		return nil, "", time.Time{}, domain.Unauthorized("invalid credentials")
	}

	ok, err := argon2id.ComparePasswordAndHash(req.Password, u.PasswordHash)
	if err != nil || !ok {
		return nil, "", time.Time{}, domain.Unauthorized("invalid credentials")
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, "", time.Time{}, domain.Storage("generate session token", err)
	}
	expiresAt := time.Now().Add(s.sessionTTL)

	err = s.sessions.Save(ctx, auth.HashToken(s.secret, token), sessions.Session{
		UserID:    u.ID,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return nil, "", time.Time{}, domain.Storage("save session", err)
	}
	return u, token, expiresAt, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, auth.HashToken(s.secret, token)); err != nil {
		return domain.Storage("delete session", err)
	}
	return nil
}

func (s *authService) Identify(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, nil
	}
	sess, err := s.sessions.Get(ctx, auth.HashToken(s.secret, token))
	if err != nil {
		return nil, domain.Storage("load session", err)
	}
	if sess == nil {
		return nil, nil
	}

	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, domain.Storage("load user", err)
	}
	if u == nil {
		return nil, nil
	}
	return &domain.Identity{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		DisplayName: u.DisplayName,
	}, nil
}
