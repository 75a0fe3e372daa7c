package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/tokengate/internal/common"
	pb "github.com/dmitrijs2005/tokengate/internal/proto"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/dmitrijs2005/tokengate/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.TokenResponse, error) {
	pair, err := s.auth.Login(ctx, req.Email, req.Secret)
	if err != nil {
		return nil, toStatus(err)
	}
	return toResponse(pair), nil
}

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.TokenResponse, error) {
	s.logger.Info(ctx, "Registration request")

	pair, err := s.auth.Register(ctx, req.Email, req.Secret)
	if err != nil {
		return nil, toStatus(err)
	}
	return toResponse(pair), nil
}

func (s *GRPCServer) RegisterGuest(ctx context.Context, req *pb.RegisterRequest) (*pb.TokenResponse, error) {
	s.logger.Info(ctx, "Guest registration request")

	pair, err := s.auth.RegisterGuest(ctx, req.Email, req.Secret)
	if err != nil {
		return nil, toStatus(err)
	}
	return toResponse(pair), nil
}

func (s *GRPCServer) Refresh(ctx context.Context, req *pb.RefreshRequest) (*pb.TokenResponse, error) {
	pair, err := s.auth.Refresh(ctx, req.AccessToken, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}
	return toResponse(pair), nil
}

func (s *GRPCServer) Revoke(ctx context.Context, req *pb.RevokeRequest) (*pb.RevokeResponse, error) {
	p, ok := services.PrincipalFromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrMissingCredential)
	}
	if err := s.auth.Revoke(ctx, p, req.RefreshToken); err != nil {
		return nil, toStatus(err)
	}
	return &pb.RevokeResponse{}, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, _ *pb.WhoAmIRequest) (*pb.WhoAmIResponse, error) {
	p, ok := services.PrincipalFromContext(ctx)
	if !ok {
		return nil, toStatus(common.ErrMissingCredential)
	}
	c := p.Claims
	return &pb.WhoAmIResponse{
		Subject:   c.Subject,
		Email:     c.Email,
		Roles:     c.Roles,
		Issuer:    c.Issuer,
		Audience:  c.Audience,
		IssuedAt:  c.IssuedAt.Unix(),
		ExpiresAt: c.ExpiresAt.Unix(),
	}, nil
}

func toResponse(p *models.TokenPair) *pb.TokenResponse {
	return &pb.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresIn:    p.ExpiresIn,
		TokenType:    p.TokenType,
	}
}

// toStatus collapses service errors into the few codes clients may see.
// Every authentication failure, whatever its cause, is "unauthorized".
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrMissingField):
		return status.Error(codes.InvalidArgument, "missing field")
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrorInternal):
		return status.Error(codes.Internal, "internal error")
	default:
		return status.Error(codes.Unauthenticated, "unauthorized")
	}
}

func rejectReason(err error) string {
	var rej *services.Rejection
	if errors.As(err, &rej) {
		return string(rej.Reason)
	}
	return "unknown"
}
