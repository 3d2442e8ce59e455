// Package sessions is the keyed session store behind cookie auth. It
// is always passed by reference into the services that need it, never
// held as package state.
package sessions

import (
	"context"
	"time"
)

type Session struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Store holds sessions keyed by token hash. Get returns (nil, nil) for
// a missing or expired session.
type Store interface {
	Save(ctx context.Context, tokenHash string, s Session) error
	Get(ctx context.Context, tokenHash string) (*Session, error)
	Delete(ctx context.Context, tokenHash string) error
}
