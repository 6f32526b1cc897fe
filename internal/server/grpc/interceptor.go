package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/rpc"
)

type ctxKey string

const bearerTokenKey ctxKey = "bearerToken"

// bearerTokenInterceptor moves the bearer token of Login calls from the
// "authorization" metadata entry into the context. A missing header and a
// non-Bearer scheme are rejected with the same message as a bad token.
func (s *GRPCServer) bearerTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if info.FullMethod == rpc.LoginFullMethodName {

		var value string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AuthorizationHeaderName)
			if len(values) > 0 {
				value = values[0]
			}
		}
		if len(value) == 0 {
			return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
		}

		token, ok := common.StripBearer(value)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
		}

		ctx = context.WithValue(ctx, bearerTokenKey, token)
	}

	return handler(ctx, req)
}

func bearerTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(bearerTokenKey).(string)
	return token
}
