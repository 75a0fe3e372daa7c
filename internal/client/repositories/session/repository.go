// Package session keeps the CLI's current login in its local database so a
// token pair survives between runs. There is at most one session.
package session

import (
	"context"
	"time"
)

// Session is the stored login.
type Session struct {
	Email        string
	AccessToken  string
	RefreshToken string
	SavedAt      time.Time
}

type Repository interface {
	// Load returns common.ErrorNotFound when nobody is logged in.
	Load(ctx context.Context) (*Session, error)
	// Save replaces the stored session.
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}
