package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"jobboard/internal/common"
	"jobboard/internal/config"
	"jobboard/internal/handlers"
	"jobboard/internal/jobs/background"
	"jobboard/internal/logger"
	"jobboard/internal/metrics"
	"jobboard/internal/middleware"
	"jobboard/internal/ratelimit"
	"jobboard/internal/repositories"
	"jobboard/internal/services"
	"jobboard/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLog, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zapLog.Sync() //nolint:errcheck

	if err := run(cfg, zapLog); err != nil {
		zapLog.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	pool, err := database.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, zapLog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, zapLog); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Redis backs the rate limiter
	redisClient := ratelimit.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, zapLog)
	defer redisClient.Close()

	// Resume storage
	storage, err := services.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
	if err != nil {
		return fmt.Errorf("failed to initialize MinIO client: %w", err)
	}
	if err := storage.EnsureBucket(ctx); err != nil {
		zapLog.Warn("Resume bucket is not available", zap.String("bucket", cfg.Minio.Bucket), zap.Error(err))
	}

	// Repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	tokenRepo := repositories.NewRefreshTokenRepo(pool)
	profileRepo := repositories.NewProfileRepo(pool)
	companyRepo := repositories.NewCompanyRepo(pool)
	jobRepo := repositories.NewJobRepo(pool)
	applicationRepo := repositories.NewApplicationRepo(pool)

	// Services
	m := metrics.New()
	tokenService := services.NewTokenService(services.TokenConfig{
		AccessSecret:  cfg.JWT.AccessSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshSecret: cfg.JWT.RefreshSecret,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	}, tokenRepo, m)
	tenantService := services.NewTenantService(tenantRepo)
	authService := services.NewAuthService(userRepo, tenantRepo, tokenRepo, profileRepo, tokenService, m, zapLog, cfg.BcryptCost)
	userService := services.NewUserService(userRepo, profileRepo, companyRepo, storage, zapLog)
	companyService := services.NewCompanyService(companyRepo)
	jobService := services.NewJobService(jobRepo, companyRepo)
	applicationService := services.NewApplicationService(applicationRepo, jobRepo, companyRepo)

	// Background jobs
	scheduler, err := background.NewJobScheduler(tokenRepo, cfg.TokenCleanupInterval, zapLog)
	if err != nil {
		return fmt.Errorf("failed to create job scheduler: %w", err)
	}
	scheduler.Start()

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = common.HTTPErrorHandler(zapLog)
	ipExtractor, err := ratelimit.IPExtractor(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("failed to configure client IP extraction: %w", err)
	}
	e.IPExtractor = ipExtractor

	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Recover())
	e.Use(logger.Middleware(zapLog))
	e.Use(middleware.VersionHeader(version))
	e.Use(m.Middleware())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, logger.RequestIDHeader},
	}))
	e.Use(echoMiddleware.BodyLimit("6M"))

	healthHandlers := handlers.NewHealthHandlers(map[string]handlers.HealthCheck{
		"database": pool.Ping,
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}, version)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	limiter := ratelimit.NewStore(redisClient, cfg.RateLimit.Max, cfg.RateLimit.Window, zapLog)
	api := e.Group("/api", limiter.Middleware())

	handlers.RegisterRoutes(api, &handlers.Handlers{
		Auth: handlers.NewAuthHandlers(authService, userService, handlers.CookieConfig{
			Secure:     cfg.IsProduction(),
			AccessTTL:  cfg.JWT.AccessTTL,
			RefreshTTL: cfg.JWT.RefreshTTL,
		}),
		Tenants:      handlers.NewTenantHandlers(tenantService),
		Users:        handlers.NewUserHandlers(userService),
		Companies:    handlers.NewCompanyHandlers(companyService),
		Jobs:         handlers.NewJobHandlers(jobService),
		Applications: handlers.NewApplicationHandlers(applicationService),
	}, middleware.TenantResolver(tenantService, zapLog), middleware.NewAuthMiddleware(authService, m))

	go func() {
		zapLog.Info("Job board server starting", zap.String("version", version), zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("HTTP server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zapLog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}
	if err := scheduler.Stop(); err != nil {
		zapLog.Error("Job scheduler shutdown failed", zap.Error(err))
	}
	return nil
}
