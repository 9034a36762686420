package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/authkeeper/internal/logger"
)

// Logging is a unary interceptor that logs every call with its duration and status.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method, peer, duration and status code of each unary call. Calls
// answered with a failed envelope still end with codes.OK.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	l.logger.Debug("gRPC request started",
		"method", info.FullMethod,
		"peer", peerAddress(ctx))

	resp, err := handler(ctx, req)

	code := codes.OK
	if err != nil {
		if st, ok := status.FromError(err); ok {
			code = st.Code()
		} else {
			code = codes.Internal
		}
	}

	l.logger.Info("gRPC request completed",
		"method", info.FullMethod,
		"duration_ms", time.Since(start).Milliseconds(),
		"status", code.String())

	switch code {
	case codes.OK:
	case codes.Unauthenticated, codes.PermissionDenied, codes.ResourceExhausted, codes.InvalidArgument:
		l.logger.Warn("gRPC request rejected",
			"method", info.FullMethod,
			"error", err.Error(),
			"status", code.String())
	default:
		l.logger.Error("gRPC request failed",
			"method", info.FullMethod,
			"error", err.Error(),
			"status", code.String())
	}

	return resp, err
}
