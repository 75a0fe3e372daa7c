// Package server wires configuration, storage, the auth services and both
// transports into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/tokengate/internal/clock"
	"github.com/dmitrijs2005/tokengate/internal/logging"
	"github.com/dmitrijs2005/tokengate/internal/server/auth"
	"github.com/dmitrijs2005/tokengate/internal/server/config"
	"github.com/dmitrijs2005/tokengate/internal/server/httpapi"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/tokengate/internal/server/services"
	"github.com/dmitrijs2005/tokengate/internal/server/storage"
	"github.com/dmitrijs2005/tokengate/internal/server/tracking"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/tokengate/internal/server/grpc"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	auth   *services.AuthService
	pruner  *services.Pruner
	release string
	flush   func()
}

// NewApp opens storage, applies migrations and builds the services. release
// is reported to Sentry.
func NewApp(ctx context.Context, c *config.Config, release string) (*App, error) {
	logger := logging.New(c.Env)

	flush, err := tracking.Init(c.SentryDSN, c.Env, release)
	if err != nil {
		logger.Warn(ctx, "sentry disabled", logging.Err(err))
	}

	db, dialect, err := storage.Open(ctx, c.StorageDriver, c.DatabaseDSN)
	if err != nil {
		flush()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db, release: release, flush: flush}

	repos, err := repomanager.NewRepositoryManager(dialect)
	if err != nil {
		app.close()
		return nil, err
	}
	if err := repos.RunMigrations(ctx, db); err != nil {
		app.close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	codec, err := auth.NewCodec(auth.CodecConfig{
		SecretKey:           []byte(c.SecretKey),
		Issuer:              c.Issuer,
		Audience:            c.Audience,
		AccessTokenValidity: c.AccessTokenValidity,
	}, clock.System)
	if err != nil {
		app.close()
		return nil, err
	}

	var external revokedtokens.Repository
	revokedStore := repos.RevokedTokens(db)
	if c.RevocationBackend == config.RevocationRedis {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB})
		if err := app.redis.Ping(ctx).Err(); err != nil {
			app.close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		r := revokedtokens.NewRedisRepository(app.redis, clock.System)
		external, revokedStore = r, r
	}

	app.auth = services.NewAuthService(services.Deps{
		DB:            db,
		Repos:         repos,
		Codec:         codec,
		Clock:         clock.System,
		Logger:        logger.With("module", "auth"),
		Reporter:      tracking.Sentry{},
		RevokedTokens: external,
	}, c)

	app.pruner = services.NewPruner(c.PruneInterval, clock.System, logger.With("module", "pruner"),
		services.PruneTarget{Name: "refresh_tokens", Store: repos.RefreshTokens(db)},
		services.PruneTarget{Name: "revoked_access_tokens", Store: revokedStore},
	)

	logger.Info(ctx, "storage ready", "driver", string(dialect), "revocation", c.RevocationBackend)
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.auth)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// readinessChecks pings the database and, when revocations live there, Redis.
func (app *App) readinessChecks() []httpapi.ReadinessCheck {
	checks := []httpapi.ReadinessCheck{{Name: "database", Check: app.db.PingContext}}
	if app.redis != nil {
		checks = append(checks, httpapi.ReadinessCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return app.redis.Ping(ctx).Err() },
		})
	}
	return checks
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	health := httpapi.Health{Version: app.release, Checks: app.readinessChecks()}
	s := httpapi.NewServer(app.config.HTTPAddr, app.logger, app.auth, health)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves both transports and the pruner until ctx is cancelled or a
// termination signal arrives, then releases storage.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.pruner.Run(ctx)
	}()

	wg.Wait()

	app.close()
	app.logger.Info(context.Background(), "App stopped")
}

func (app *App) close() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
	app.flush()
}
