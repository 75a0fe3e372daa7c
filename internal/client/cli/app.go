package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dmitrijs2005/tokengate/internal/client/client"
	"github.com/dmitrijs2005/tokengate/internal/client/config"
	"github.com/dmitrijs2005/tokengate/internal/client/repositories/session"
	"github.com/dmitrijs2005/tokengate/internal/client/services"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	userName    string
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient, err := client.NewTokenGateClient(c.ServerEndpointAddr)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, session.NewSQLiteRepository(db))

	return &App{config: c, authService: as, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	return fmt.Sprintf("(%s) ", a.userName)
}

// Run restores a saved session and starts the REPL; it blocks until the user
// exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	fmt.Fprintln(a.out, "Welcome to tokengate CLI (type 'help' for commands)")

	rctx, cancel := context.WithTimeout(ctx, a.config.RequestTimeout)
	email, err := a.authService.Restore(rctx)
	cancel()
	if err != nil {
		log.Printf("could not restore session: %v", err)
	}
	a.userName = email

	runREPL(ctx, a, a.getStatus, a.reader)
}
