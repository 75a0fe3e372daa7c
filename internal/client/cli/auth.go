package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/common"
)

// promptLine and promptSecret are swapped out in tests.
var (
	promptLine   = PromptLine
	promptSecret = PromptSecret
)

func (a *App) credentials() (string, []byte, error) {
	email, err := promptLine(a.reader, a.out, "Email")
	if err != nil {
		return "", nil, err
	}
	password, err := promptSecret(a.out, "Password")
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Register creates a User account and logs it in.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, email, password); err != nil {
		return err
	}
	a.userName = email
	fmt.Fprintln(a.out, "Registered and logged in")
	return nil
}

// RegisterGuest creates a Guest account and logs it in.
func (a *App) RegisterGuest(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.RegisterGuest(ctx, email, password); err != nil {
		return err
	}
	a.userName = email
	fmt.Fprintln(a.out, "Registered as guest and logged in")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, email, password); err != nil {
		return err
	}
	a.userName = email
	fmt.Fprintln(a.out, "Login successful")
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	if err := a.authService.Refresh(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Tokens rotated")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	me, err := a.authService.WhoAmI(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "subject: %s\nemail:   %s\nroles:   %s\nexpires: %s\n",
		me.Subject, me.Email, strings.Join(me.Roles, ", "),
		time.Unix(me.ExpiresAt, 0).Local().Format(time.RFC3339))
	return nil
}

// Logout revokes the current session and forgets it locally.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.userName = ""
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
