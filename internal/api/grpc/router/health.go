package router

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/authkeeper/internal/api/grpc/authv1"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

const healthCheckTimeout = 2 * time.Second

// CheckHealth pings db once and publishes the result for the server as a whole and for
// the Auth service.
func CheckHealth(ctx context.Context, hs *health.Server, db model.Pinger, logger *logger.Logger) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := db.Ping(ctx); err != nil {
		logger.Warn("Health: database ping failed", "error", err.Error())
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	hs.SetServingStatus("", status)
	hs.SetServingStatus(authv1.ServiceName, status)
	return status
}

// WatchHealth runs CheckHealth every interval until ctx ends, then marks every service
// as not serving.
func WatchHealth(ctx context.Context, hs *health.Server, db model.Pinger, interval time.Duration, logger *logger.Logger) {
	CheckHealth(ctx, hs, db, logger)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-ticker.C:
			CheckHealth(ctx, hs, db, logger)
		}
	}
}
