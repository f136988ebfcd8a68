package grpc

import (
	"context"

	"github.com/dmitrijs2005/spellcheckd/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const tokenKey ctxKey = "token"

// protectedMethods need a session token. Register and Login look at an
// optional one, Logout is a no-op without it.
var protectedMethods = map[string]bool{
	rpc.FullMethod("Check"):        true,
	rpc.FullMethod("History"):      true,
	rpc.FullMethod("Query"):        true,
	rpc.FullMethod("LoginHistory"): true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(rpc.TokenMetadataKey); len(values) > 0 {
			accessToken = values[0]
		}
	}

	if protectedMethods[info.FullMethod] && accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	ctx = context.WithValue(ctx, tokenKey, accessToken)
	return handler(ctx, req)
}

func tokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey).(string)
	return tok
}
