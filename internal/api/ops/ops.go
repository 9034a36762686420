// Package ops serves the operational endpoints: dependency health and Prometheus metrics.
package ops

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/model"
)

const pingTimeout = 2 * time.Second

// OpsServer is the HTTP listener for /healthz and /metrics.
type OpsServer struct {
	server *http.Server
	logger *logger.Logger
}

// NewRouter builds the gin engine behind OpsServer. /healthz pings every entry of checks
// and answers 503 when any of them is down.
func NewRouter(checks map[string]model.Pinger, gatherer prometheus.Gatherer, logger *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()

		code, state := http.StatusOK, "ok"
		results := make(gin.H, len(checks))
		for name, dep := range checks {
			if err := dep.Ping(ctx); err != nil {
				logger.Warn("Ops server: dependency ping failed",
					"dependency", name,
					"error", err.Error())
				results[name] = "down"
				code, state = http.StatusServiceUnavailable, "unavailable"
				continue
			}
			results[name] = "up"
		}
		c.JSON(code, gin.H{"status": state, "checks": results})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return router
}

// NewOpsServer creates an OpsServer listening on addr.
func NewOpsServer(addr string, checks map[string]model.Pinger, gatherer prometheus.Gatherer, logger *logger.Logger) *OpsServer {
	gin.SetMode(gin.ReleaseMode)
	return &OpsServer{
		server: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(checks, gatherer, logger),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start serves until Stop.
func (s *OpsServer) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve ops endpoint: %w", err)
	}
	return nil
}

// Stop shuts the listener down, waiting for in-flight requests until ctx ends.
func (s *OpsServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Address returns the configured listen address.
func (s *OpsServer) Address() string {
	return s.server.Addr
}
