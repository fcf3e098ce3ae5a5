package main

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/PaulBabatuyi/jobboard-chat/internal/auth"
	v1 "github.com/PaulBabatuyi/jobboard-chat/proto/chat/v1"
)

// publicMethods don't require authentication.
var publicMethods = map[string]bool{
	v1.ChatService_Register_FullMethodName: true,
	v1.ChatService_Login_FullMethodName:    true,
}

// context key type for storing auth claims in context
type authContextKey struct{}

// getClaimsFromContext extracts auth claims from the context, if present.
func getClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	v := ctx.Value(authContextKey{})
	if v == nil {
		return nil, false
	}
	c, ok := v.(*auth.Claims)
	return c, ok
}

// callerFromContext returns the authenticated user's id, both as the string
// used in conversation ids and as an ObjectID for user lookups.
func callerFromContext(ctx context.Context) (string, bson.ObjectID, error) {
	claims, ok := getClaimsFromContext(ctx)
	if !ok {
		return "", bson.ObjectID{}, status.Error(codes.Unauthenticated, "missing auth claims")
	}
	id, err := bson.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return "", bson.ObjectID{}, status.Error(codes.Unauthenticated, "malformed user id in token")
	}
	return claims.UserID, id, nil
}

// authUnaryInterceptor returns a UnaryServerInterceptor that enforces JWT authentication
// for all methods except publicMethods (Register, Login).
func authUnaryInterceptor(j *auth.JWTManager) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if publicMethods[info.FullMethod] {
			return handler(ctx, req)
		}

		// extract Authorization header from metadata
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Errorf(codes.Unauthenticated, "missing metadata")
		}
		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, status.Errorf(codes.Unauthenticated, "missing authorization header")
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeaders[0], "Bearer"))
		if token == "" {
			return nil, status.Errorf(codes.Unauthenticated, "invalid token")
		}

		claims, err := j.VerifyToken(token)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "unauthenticated: %v", err)
		}

		// attach claims into context for handlers
		ctx = context.WithValue(ctx, authContextKey{}, claims)
		return handler(ctx, req)
	}
}
