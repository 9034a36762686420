package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc/health"

	"github.com/dtroode/authkeeper/database"
	grpcctx "github.com/dtroode/authkeeper/internal/api/grpc/context"
	"github.com/dtroode/authkeeper/internal/api/grpc/handler"
	"github.com/dtroode/authkeeper/internal/api/grpc/middleware"
	"github.com/dtroode/authkeeper/internal/api/grpc/router"
	grpcServer "github.com/dtroode/authkeeper/internal/api/grpc/server"
	"github.com/dtroode/authkeeper/internal/api/ops"
	"github.com/dtroode/authkeeper/internal/config"
	"github.com/dtroode/authkeeper/internal/guard"
	"github.com/dtroode/authkeeper/internal/hasher"
	"github.com/dtroode/authkeeper/internal/logger"
	"github.com/dtroode/authkeeper/internal/metrics"
	"github.com/dtroode/authkeeper/internal/model"
	"github.com/dtroode/authkeeper/internal/observability"
	"github.com/dtroode/authkeeper/internal/repository/postgres"
	"github.com/dtroode/authkeeper/internal/server"
	"github.com/dtroode/authkeeper/internal/service"
	storage "github.com/dtroode/authkeeper/internal/storage/minio"
	"github.com/dtroode/authkeeper/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const healthCheckInterval = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	logAppVersion()

	if err := observability.InitSentry(cfg.Sentry.DSN, cfg.Sentry.Environment, buildVersion); err != nil {
		logger.Fatal("failed to initialize sentry", "error", err)
	}
	defer observability.FlushSentry()

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	if version, err := database.VersionFromDSN(ctx, cfg.Database.DSN); err != nil {
		logger.Warn("failed to read schema version", "error", err)
	} else {
		logger.Info("database schema ready", "version", version)
	}

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket, cfg.Storage.PublicURL)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	accountRepo := postgres.NewAccountRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	apiKeyRepo := postgres.NewAPIKeyRepository(db)

	authMetrics := metrics.NewPrometheus(prometheus.DefaultRegisterer)
	passwordHasher := hasher.NewBcrypt(cfg.Security.BcryptCost)
	jwt := token.NewJWT(token.Options{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL(),
	}, logger)
	accountGuard := guard.New(accountRepo, cfg.Security.MaxFailedAttempts, cfg.Security.LockoutDuration(), logger)
	validator := service.NewValidator()

	tokenService := service.NewTokenService(jwt, refreshTokenRepo, accountRepo, accountGuard, authMetrics, logger)
	authService := service.NewAuth(accountRepo, passwordHasher, accountGuard, tokenService, validator, authMetrics, logger)
	accountService := service.NewAccount(accountRepo, storageClient, validator, logger)
	apiKeyService := service.NewAPIKeys(apiKeyRepo, accountRepo, passwordHasher, validator, authMetrics, logger)

	reporter := observability.NewReporter(nil)
	ctxMgr := grpcctx.NewManager()
	authHandler := handler.NewAuth(authService, accountService, apiKeyService, ctxMgr, reporter, logger)
	authenticate := middleware.NewAuthenticate(jwt, accountRepo, apiKeyService, ctxMgr, logger)

	healthServer := health.NewServer()
	go router.WatchHealth(ctx, healthServer, db, healthCheckInterval, logger)

	r := router.New(
		authHandler,
		authenticate,
		healthServer,
		observability.PanicHandler(reporter, logger),
		router.Options{
			LoginRatePerMinute: cfg.Security.LoginRatePerMinute,
			LoginRateBurst:     cfg.Security.LoginRateBurst,
		},
		logger,
	)
	grpcSrv := grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port))
	sl := server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)

	opsSrv := ops.NewOpsServer(cfg.Ops.Address, map[string]model.Pinger{
		"database": db,
		"storage":  storageClient,
	}, prometheus.DefaultGatherer, logger)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		logger.Info("Starting gRPC server", "address", grpcSrv.Address(), "tls", cfg.GRPC.EnableHTTPS)
		if err := grpcSrv.Start(sl); err != nil {
			logger.Error("failed to start gRPC server", "error", err)
			stop()
		}
	}()
	go func() {
		defer wg.Done()
		logger.Info("Starting ops server", "address", opsSrv.Address())
		if err := opsSrv.Start(); err != nil {
			logger.Error("failed to start ops server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := grpcSrv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", grpcSrv.Address())
	}
	if err := opsSrv.Stop(shutdownCtx); err != nil {
		logger.Error("error during ops server shutdown", "error", err, "address", opsSrv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
