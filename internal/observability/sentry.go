// Package observability reports unexpected failures to Sentry.
package observability

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/authkeeper/internal/logger"
)

const flushTimeout = 2 * time.Second

// InitSentry configures the global Sentry client. An empty dsn leaves reporting disabled.
func InitSentry(dsn, environment, release string) error {
	if dsn == "" {
		return nil
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		Release:          release,
		AttachStacktrace: true,
	})
}

// FlushSentry waits for buffered events to be delivered.
func FlushSentry() {
	sentry.Flush(flushTimeout)
}

// Reporter sends errors to Sentry, tagged with the gRPC method when known.
type Reporter struct {
	hub *sentry.Hub
}

// NewReporter creates a Reporter on hub. A nil hub means the global one.
func NewReporter(hub *sentry.Hub) *Reporter {
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	return &Reporter{hub: hub}
}

// Report captures err.
func (r *Reporter) Report(ctx context.Context, err error) {
	hub := r.hub
	if ctxHub := sentry.GetHubFromContext(ctx); ctxHub != nil {
		hub = ctxHub
	}

	hub.WithScope(func(scope *sentry.Scope) {
		if method, ok := grpc.Method(ctx); ok {
			scope.SetTag("grpc.method", method)
		}
		hub.CaptureException(err)
	})
}

// PanicHandler turns a recovered panic into codes.Internal after logging and reporting
// it. It fits the recovery interceptor's handler signature.
func PanicHandler(reporter *Reporter, logger *logger.Logger) func(ctx context.Context, p any) error {
	return func(ctx context.Context, p any) error {
		method, _ := grpc.Method(ctx)
		logger.Error("gRPC handler panicked",
			"method", method,
			"panic", fmt.Sprint(p),
			"stack", string(debug.Stack()))

		reporter.hub.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("grpc.method", method)
			scope.SetLevel(sentry.LevelFatal)
			reporter.hub.CaptureMessage(fmt.Sprintf("panic in gRPC handler: %v", p))
		})

		return status.Error(codes.Internal, "An internal error occurred")
	}
}
