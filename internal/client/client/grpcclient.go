package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tokengate/internal/common"
	pb "github.com/dmitrijs2005/tokengate/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// Tokens is the pair the client currently holds.
type Tokens struct {
	AccessToken  string
	RefreshToken string
}

// Client is the API the CLI uses.
type Client interface {
	Close() error
	Register(ctx context.Context, email string, secret []byte) error
	RegisterGuest(ctx context.Context, email string, secret []byte) error
	Login(ctx context.Context, email string, secret []byte) error
	Refresh(ctx context.Context) error
	Revoke(ctx context.Context) error
	WhoAmI(ctx context.Context) (*pb.WhoAmIResponse, error)
	Tokens() Tokens
	SetTokens(t Tokens)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      pb.TokenServiceClient

	mu     sync.Mutex
	tokens Tokens
}

var protectedMethods = map[string]bool{
	pb.TokenService_Revoke_FullMethodName: true,
	pb.TokenService_WhoAmI_FullMethodName: true,
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if !protectedMethods[method] {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	before := s.Tokens()
	if before.AccessToken == "" {
		return ErrNotLoggedIn
	}

	err := invoker(withAccessToken(ctx, before.AccessToken), method, req, reply, cc, opts...)
	if status.Code(err) != codes.Unauthenticated || before.RefreshToken == "" {
		return err
	}

	// The server does not say why it refused; an expired access token is the
	// common case, so rotate once and retry.
	if rerr := s.Refresh(ctx); rerr != nil {
		return err
	}
	after := s.Tokens()

	// Rotation consumed the refresh token a Revoke was about to name.
	if r, ok := req.(*pb.RevokeRequest); ok && r.GetRefreshToken() == before.RefreshToken {
		req = &pb.RevokeRequest{RefreshToken: after.RefreshToken}
	}
	return invoker(withAccessToken(ctx, after.AccessToken), method, req, reply, cc, opts...)
}

func NewTokenGateClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(extra ...grpc.DialOption) error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, extra...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewTokenServiceClient(conn)
	return nil
}

func (s *GRPCClient) Tokens() Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens
}

func (s *GRPCClient) SetTokens(t Tokens) {
	s.mu.Lock()
	s.tokens = t
	s.mu.Unlock()
}

func (s *GRPCClient) store(resp *pb.TokenResponse) {
	s.SetTokens(Tokens{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken})
}

func (s *GRPCClient) Register(ctx context.Context, email string, secret []byte) error {
	resp, err := s.client.Register(ctx, &pb.RegisterRequest{Email: email, Secret: string(secret)})
	if err != nil {
		return s.mapError(err)
	}
	s.store(resp)
	return nil
}

func (s *GRPCClient) RegisterGuest(ctx context.Context, email string, secret []byte) error {
	resp, err := s.client.RegisterGuest(ctx, &pb.RegisterRequest{Email: email, Secret: string(secret)})
	if err != nil {
		return s.mapError(err)
	}
	s.store(resp)
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, email string, secret []byte) error {
	resp, err := s.client.Login(ctx, &pb.LoginRequest{Email: email, Secret: string(secret)})
	if err != nil {
		return s.mapError(err)
	}
	s.store(resp)
	return nil
}

// Refresh exchanges the held pair for a new one.
func (s *GRPCClient) Refresh(ctx context.Context) error {
	t := s.Tokens()
	if t.RefreshToken == "" {
		return ErrNotLoggedIn
	}
	resp, err := s.client.Refresh(ctx, &pb.RefreshRequest{AccessToken: t.AccessToken, RefreshToken: t.RefreshToken})
	if err != nil {
		return s.mapError(err)
	}
	s.store(resp)
	return nil
}

// Revoke logs out: the held refresh token is revoked and the access token
// blacklisted. The pair is forgotten on success.
func (s *GRPCClient) Revoke(ctx context.Context) error {
	t := s.Tokens()
	if t.RefreshToken == "" {
		return ErrNotLoggedIn
	}
	if _, err := s.client.Revoke(ctx, &pb.RevokeRequest{RefreshToken: t.RefreshToken}); err != nil {
		return s.mapError(err)
	}
	s.SetTokens(Tokens{})
	return nil
}

func (s *GRPCClient) WhoAmI(ctx context.Context) (*pb.WhoAmIResponse, error) {
	resp, err := s.client.WhoAmI(ctx, &pb.WhoAmIRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return ErrInvalidArgument
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
