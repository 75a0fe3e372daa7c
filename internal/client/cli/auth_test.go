package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	pb "github.com/dmitrijs2005/tokengate/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	email    string
	password string
	calls    []string
	err      error
	me       *pb.WhoAmIResponse
}

func (f *fakeAuth) Restore(context.Context) (string, error) {
	f.calls = append(f.calls, "restore")
	return f.email, f.err
}

func (f *fakeAuth) Register(_ context.Context, email string, password []byte) error {
	f.calls = append(f.calls, "register")
	f.email, f.password = email, string(password)
	return f.err
}

func (f *fakeAuth) RegisterGuest(_ context.Context, email string, password []byte) error {
	f.calls = append(f.calls, "guest")
	f.email, f.password = email, string(password)
	return f.err
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) error {
	f.calls = append(f.calls, "login")
	f.email, f.password = email, string(password)
	return f.err
}

func (f *fakeAuth) Refresh(context.Context) error {
	f.calls = append(f.calls, "refresh")
	return f.err
}

func (f *fakeAuth) WhoAmI(context.Context) (*pb.WhoAmIResponse, error) {
	f.calls = append(f.calls, "whoami")
	return f.me, f.err
}

func (f *fakeAuth) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	return f.err
}

func (f *fakeAuth) Close(context.Context) error { return nil }

func stubInputs(t *testing.T, email, password string) {
	t.Helper()
	oldLine, oldSecret := promptLine, promptSecret
	promptLine = func(*bufio.Reader, io.Writer, string) (string, error) { return email, nil }
	promptSecret = func(io.Writer, string) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() { promptLine, promptSecret = oldLine, oldSecret })
}

func newTestApp(fa *fakeAuth) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{authService: fa, reader: bufio.NewReader(strings.NewReader("")), out: &out}, &out
}

func TestApp_RegisterLoginGuest(t *testing.T) {
	stubInputs(t, "alice@example.com", "s3cret")

	for _, tc := range []struct {
		name string
		do   func(*App) error
		call string
		msg  string
	}{
		{"register", func(a *App) error { return a.Register(context.Background()) }, "register", "Registered and logged in"},
		{"guest", func(a *App) error { return a.RegisterGuest(context.Background()) }, "guest", "Registered as guest"},
		{"login", func(a *App) error { return a.Login(context.Background()) }, "login", "Login successful"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			fa := &fakeAuth{}
			a, out := newTestApp(fa)
			require.NoError(t, tc.do(a))
			assert.Equal(t, []string{tc.call}, fa.calls)
			assert.Equal(t, "alice@example.com", fa.email)
			assert.Equal(t, "s3cret", fa.password)
			assert.True(t, a.isLoggedIn())
			assert.Contains(t, out.String(), tc.msg)
		})
	}
}

func TestApp_LoginFailureKeepsLoggedOut(t *testing.T) {
	stubInputs(t, "alice@example.com", "wrong")
	fa := &fakeAuth{err: errors.New("unauthorized")}
	a, _ := newTestApp(fa)

	err := a.Login(context.Background())
	require.Error(t, err)
	assert.False(t, a.isLoggedIn())
}

func TestApp_InputErrorSkipsService(t *testing.T) {
	oldLine := promptLine
	promptLine = func(*bufio.Reader, io.Writer, string) (string, error) { return "", io.EOF }
	t.Cleanup(func() { promptLine = oldLine })

	fa := &fakeAuth{}
	a, _ := newTestApp(fa)
	assert.ErrorIs(t, a.Login(context.Background()), io.EOF)
	assert.Empty(t, fa.calls)
}

func TestApp_WhoAmIPrintsClaims(t *testing.T) {
	fa := &fakeAuth{me: &pb.WhoAmIResponse{
		Subject:   "u-1",
		Email:     "alice@example.com",
		Roles:     []string{"User", "Admin"},
		ExpiresAt: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC).Unix(),
	}}
	a, out := newTestApp(fa)

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "subject: u-1")
	assert.Contains(t, out.String(), "roles:   User, Admin")
}

func TestApp_LogoutForgetsUserEvenOnError(t *testing.T) {
	fa := &fakeAuth{err: errors.New("unavailable")}
	a, _ := newTestApp(fa)
	a.userName = "alice@example.com"

	require.Error(t, a.Logout(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "", a.getStatus())
}

func TestApp_StatusShowsUser(t *testing.T) {
	a, _ := newTestApp(&fakeAuth{})
	a.userName = "bob@example.com"
	assert.Equal(t, "(bob@example.com) ", a.getStatus())
}
