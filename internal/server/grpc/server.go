// Package grpc exposes the auth service as tokengate.v1.TokenService.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/tokengate/internal/logging"
	pb "github.com/dmitrijs2005/tokengate/internal/proto"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/dmitrijs2005/tokengate/internal/server/services"
	"google.golang.org/grpc"
)

// AuthService is the part of services.AuthService the transport needs.
type AuthService interface {
	Login(ctx context.Context, email, secret string) (*models.TokenPair, error)
	Register(ctx context.Context, email, secret string) (*models.TokenPair, error)
	RegisterGuest(ctx context.Context, email, secret string) (*models.TokenPair, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*models.TokenPair, error)
	Revoke(ctx context.Context, p *services.Principal, refreshToken string) error
	Authenticate(ctx context.Context, credential string) (*services.Principal, error)
}

type GRPCServer struct {
	pb.UnimplementedTokenServiceServer
	address string
	auth    AuthService
	logger  logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, svc AuthService) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		auth:    svc,
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	pb.RegisterTokenServiceServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
