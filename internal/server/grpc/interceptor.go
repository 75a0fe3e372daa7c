package grpc

import (
	"context"

	"github.com/dmitrijs2005/tokengate/internal/common"
	pb "github.com/dmitrijs2005/tokengate/internal/proto"
	"github.com/dmitrijs2005/tokengate/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// protected lists the methods that need a bearer credential.
var protected = map[string]bool{
	pb.TokenService_Revoke_FullMethodName: true,
	pb.TokenService_WhoAmI_FullMethodName: true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protected[info.FullMethod] {
		return handler(ctx, req)
	}

	var credential string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			credential = values[0]
		}
	}

	p, err := s.auth.Authenticate(ctx, credential)
	if err != nil {
		s.logger.Info(ctx, "request rejected", "method", info.FullMethod, "reason", rejectReason(err))
		return nil, toStatus(err)
	}

	return handler(services.WithPrincipal(ctx, p), req)
}
