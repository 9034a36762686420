package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/authkeeper/internal/api/grpc/authv1"
	"github.com/dtroode/authkeeper/internal/api/grpc/middleware"
	"github.com/dtroode/authkeeper/internal/logger"
)

// Options configures the interceptor chain.
type Options struct {
	LoginRatePerMinute int
	LoginRateBurst     int
}

// Router builds the gRPC server for the Auth service.
type Router struct {
	handler      authv1.AuthServer
	authenticate *middleware.Authenticate
	health       *health.Server
	panicHandler recovery.RecoveryHandlerFuncContext
	opts         Options
	logger       *logger.Logger
}

// New creates a Router. panicHandler turns recovered panics into errors.
func New(
	handler authv1.AuthServer,
	authenticate *middleware.Authenticate,
	healthServer *health.Server,
	panicHandler recovery.RecoveryHandlerFuncContext,
	opts Options,
	logger *logger.Logger,
) *Router {
	return &Router{
		handler:      handler,
		authenticate: authenticate,
		health:       healthServer,
		panicHandler: panicHandler,
		opts:         opts,
		logger:       logger,
	}
}

// requiresAuth selects the Auth methods that are not public. Health and reflection stay open.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	if c.Service != authv1.ServiceName {
		return false
	}
	return !authv1.PublicMethods[c.FullMethod()]
}

// Register builds the server with recovery, logging, rate limiting and authentication,
// and registers the Auth, health and reflection services.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	rateLimit := middleware.NewRateLimit(
		r.opts.LoginRatePerMinute,
		r.opts.LoginRateBurst,
		[]string{authv1.LoginMethod, authv1.RegisterMethod},
		r.logger,
	)
	recoveryOpt := recovery.WithRecoveryHandlerContext(r.panicHandler)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoveryOpt),
			logging.HandleGRPC,
			rateLimit.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(r.authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
			r.authenticate.RestrictAPIKeys,
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoveryOpt),
		),
	)

	authv1.RegisterAuthServer(s, r.handler)
	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	return s
}
