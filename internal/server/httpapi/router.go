// Package httpapi exposes the auth service as a JSON API over gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/logging"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/dmitrijs2005/tokengate/internal/server/services"
	"github.com/gin-gonic/gin"
)

// AuthService is the part of services.AuthService the API needs.
type AuthService interface {
	Login(ctx context.Context, email, secret string) (*models.TokenPair, error)
	Register(ctx context.Context, email, secret string) (*models.TokenPair, error)
	RegisterGuest(ctx context.Context, email, secret string) (*models.TokenPair, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*models.TokenPair, error)
	Revoke(ctx context.Context, p *services.Principal, refreshToken string) error
	Authenticate(ctx context.Context, credential string) (*services.Principal, error)
}

// NewRouter wires routes and middleware.
func NewRouter(svc AuthService, l logging.Logger, health Health) *gin.Engine {
	h := &Handler{auth: svc, logger: l}
	if health.Now == nil {
		health.Now = time.Now
	}
	hh := &healthHandler{health: health, logger: l}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(l))

	r.GET("/health", hh.Live)
	r.GET("/health/ready", hh.Ready)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/register", h.Register)
		authGroup.POST("/register-guest", h.RegisterGuest)
		authGroup.POST("/refresh", h.Refresh)

		authGroup.POST("/revoke", RequireAuth(svc, l), h.Revoke)
		authGroup.GET("/me", RequireAuth(svc, l), h.Me)
	}

	return r
}

type Server struct {
	address string
	handler http.Handler
	logger  logging.Logger
}

func NewServer(a string, l logging.Logger, svc AuthService, health Health) *Server {
	l = l.With("module", "http_server")
	return &Server{address: a, handler: NewRouter(svc, l, health), logger: l}
}

// Run serves until ctx is cancelled, then shuts down with a short grace
// period.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
