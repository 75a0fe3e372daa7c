// Package services contains application services for the tokengate CLI.
// AuthService drives the server calls and keeps the resulting token pair in
// the local session store.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/client/client"
	"github.com/dmitrijs2005/tokengate/internal/client/repositories/session"
	"github.com/dmitrijs2005/tokengate/internal/common"
	pb "github.com/dmitrijs2005/tokengate/internal/proto"
)

// AuthService defines the CLI's authentication operations. Every method that
// obtains a new pair persists it; Logout clears it.
type AuthService interface {
	Restore(ctx context.Context) (string, error)
	Register(ctx context.Context, email string, password []byte) error
	RegisterGuest(ctx context.Context, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Refresh(ctx context.Context) error
	WhoAmI(ctx context.Context) (*pb.WhoAmIResponse, error)
	Logout(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client   client.Client
	sessions session.Repository
	now      func() time.Time
	email    string
}

func NewAuthService(c client.Client, sessions session.Repository) AuthService {
	return &authService{client: c, sessions: sessions, now: time.Now}
}

// Restore loads a saved session into the client and returns its email, or
// "" when there is none.
func (a *authService) Restore(ctx context.Context) (string, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil
		}
		return "", err
	}
	a.client.SetTokens(client.Tokens{AccessToken: s.AccessToken, RefreshToken: s.RefreshToken})
	a.email = s.Email
	return s.Email, nil
}

func (a *authService) Register(ctx context.Context, email string, password []byte) error {
	email = strings.TrimSpace(email)
	if err := a.client.Register(ctx, email, password); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return a.save(ctx, email)
}

func (a *authService) RegisterGuest(ctx context.Context, email string, password []byte) error {
	email = strings.TrimSpace(email)
	if err := a.client.RegisterGuest(ctx, email, password); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return a.save(ctx, email)
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	email = strings.TrimSpace(email)
	if err := a.client.Login(ctx, email, password); err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	return a.save(ctx, email)
}

func (a *authService) Refresh(ctx context.Context) error {
	if err := a.client.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh error: %w", err)
	}
	return a.save(ctx, a.email)
}

// WhoAmI may rotate the pair under the hood; the stored session follows.
func (a *authService) WhoAmI(ctx context.Context) (*pb.WhoAmIResponse, error) {
	before := a.client.Tokens()
	me, err := a.client.WhoAmI(ctx)
	if after := a.client.Tokens(); after != before && after.RefreshToken != "" {
		if serr := a.save(ctx, a.email); serr != nil {
			return nil, serr
		}
	}
	if err != nil {
		return nil, err
	}
	return me, nil
}

// Logout revokes the session on the server and forgets it locally. The
// local copy is dropped even when the server call fails with Unauthorized,
// since the tokens are useless then anyway.
func (a *authService) Logout(ctx context.Context) error {
	err := a.client.Revoke(ctx)
	if err != nil && !errors.Is(err, client.ErrUnauthorized) {
		return fmt.Errorf("logout error: %w", err)
	}
	a.client.SetTokens(client.Tokens{})
	a.email = ""
	if cerr := a.sessions.Clear(ctx); cerr != nil {
		return cerr
	}
	return err
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

func (a *authService) save(ctx context.Context, email string) error {
	t := a.client.Tokens()
	a.email = email
	err := a.sessions.Save(ctx, &session.Session{
		Email:        email,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		SavedAt:      a.now(),
	})
	if err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}
