package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/municipal_tax_app/internal/adapters/notify"
	"github.com/SscSPs/municipal_tax_app/internal/adapters/storage"
	portsrepo "github.com/SscSPs/municipal_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/municipal_tax_app/internal/core/ports/services"
	"github.com/SscSPs/municipal_tax_app/internal/core/services"
	"github.com/SscSPs/municipal_tax_app/internal/handlers"
	"github.com/SscSPs/municipal_tax_app/internal/middleware"
	"github.com/SscSPs/municipal_tax_app/internal/platform/config"
	"github.com/SscSPs/municipal_tax_app/internal/platform/metrics"
	"github.com/SscSPs/municipal_tax_app/internal/repositories/database/memory"
	"github.com/SscSPs/municipal_tax_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/municipal_tax_app/internal/utils"
	"github.com/SscSPs/municipal_tax_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title Municipal Tax Backend API
// @version 1.0
// @description Assessment, demand, payment, field-visit and notice lifecycle for municipal taxes.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepos()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	proofs, err := setupProofStorage(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize proof storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	notifier := notify.Multi{notify.NewPosthogNotifier(posthogClient)}
	if cfg.SMTP.Enabled() {
		notifier = append(notifier, notify.NewEmailNotifier(cfg.SMTP))
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, services.Externals{
		Notifier: notifier,
		Proofs:   proofs,
	}, services.WithMetrics(appMetrics))

	var sweeper *services.OverdueSweeper
	if cfg.OverdueSweepSchedule != "" {
		sweeper, err = services.NewOverdueSweeper(serviceContainer.Demand, cfg.OverdueSweepSchedule, logger)
		if err != nil {
			logger.Error("Invalid OVERDUE_SWEEP_SCHEDULE", slog.String("error", err.Error()))
			os.Exit(1)
		}
		sweeper.Start()
	}

	if err := handlers.RegisterValidators(); err != nil {
		logger.Error("Failed to register request validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router, err := setupRouter(cfg, logger, appMetrics, posthogClient)
	if err != nil {
		logger.Error("Failed to set up router", slog.String("error", err.Error()))
		os.Exit(1)
	}
	handlers.RegisterRoutes(router, cfg, serviceContainer, registry)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
	if sweeper != nil {
		sweeper.Stop(shutdownCtx)
	}
}

// setupRepositories returns the configured repository set and a func releasing its resources.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StorageDriver == config.StorageMemory {
		logger.Warn("Using in-memory storage")
		return memory.NewStore().Repositories(), func() {}, nil
	}

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

func setupProofStorage(ctx context.Context, cfg *config.Config) (portssvc.ProofStorage, error) {
	if cfg.ProofStorageDriver == config.ProofStorageS3 {
		s3Storage, err := storage.NewS3ProofStorage(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return s3Storage, nil
	}
	local, err := storage.NewLocalProofStorage(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, err
	}
	return local, nil
}

func setupRouter(cfg *config.Config, logger *slog.Logger, appMetrics *metrics.Metrics, posthogClient *utils.PosthogClientWrapper) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return nil, err
	}
	rateLimiter := limiter.New(limitermemory.NewStore(), rate)

	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	// Global middleware (logging, recovery)
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.RequestMetrics(appMetrics),
		middleware.RateLimit(rateLimiter),
		middleware.RequestTimeout(cfg.RequestTimeout),
		middleware.PosthogMiddleware(posthogClient),
	)
	return r, nil
}
