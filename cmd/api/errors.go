package main

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PaulBabatuyi/jobboard-chat/internal/data"
)

// toStatus maps store errors onto gRPC status codes. Validation messages are
// passed through to the client; unexpected errors are logged and hidden.
func (s *Server) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "request canceled")
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil:
		return status.Error(codes.DeadlineExceeded, "deadline exceeded")
	case errors.Is(err, data.ErrValidation), errors.Is(err, data.ErrInvalidParticipants):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, data.ErrNotFound):
		return status.Errorf(codes.NotFound, "%s: not found", op)
	case errors.Is(err, data.ErrUserExists):
		return status.Error(codes.AlreadyExists, "user name is taken")
	case errors.Is(err, data.ErrStorageUnavailable):
		s.logger.WarnContext(ctx, "storage unavailable", "op", op, "error", err)
		return status.Error(codes.Unavailable, "storage unavailable, retry later")
	default:
		s.logger.ErrorContext(ctx, "request failed", slog.String("op", op), slog.Any("error", err))
		return status.Errorf(codes.Internal, "%s failed", op)
	}
}
