package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/usecase"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/service"
	"github.com/Abhaykauahal21/LoanFlow/internal/infrastructure/cache"
	"github.com/Abhaykauahal21/LoanFlow/internal/infrastructure/config"
	"github.com/Abhaykauahal21/LoanFlow/internal/infrastructure/messaging"
	pgRepo "github.com/Abhaykauahal21/LoanFlow/internal/infrastructure/persistence/postgres"
	"github.com/Abhaykauahal21/LoanFlow/internal/presentation/rest"
	"github.com/Abhaykauahal21/LoanFlow/pkg/auth"
	pkgkafka "github.com/Abhaykauahal21/LoanFlow/pkg/kafka"
	"github.com/Abhaykauahal21/LoanFlow/pkg/observability"
	pkgpostgres "github.com/Abhaykauahal21/LoanFlow/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load .env in development; a missing file is not an error.
	_ = godotenv.Load() //nolint:errcheck

	cfg := config.Load()
	logger := observability.NewLogger(cfg.ServiceName, cfg.LogLevel)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting loanflow",
		"http_port", cfg.HTTPPort,
		"metrics_port", cfg.MetricsPort,
	)

	// Metrics.
	metrics, err := observability.NewMetrics(cfg.ServiceName)
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = metrics.Shutdown(context.Background()) }() //nolint:errcheck

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(pgCfg.DSN(), cfg.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Redis (schedule cache).
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = redisClient.Close() }() //nolint:errcheck
	scheduleCache := cache.NewRedisScheduleCache(redisClient)

	// Kafka event publisher.
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
	defer func() { _ = kafkaProducer.Close() }() //nolint:errcheck
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	// JWT service.
	jwtSvc, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TokenTTL)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// Repositories.
	appRepo := pgRepo.NewLoanApplicationRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)
	paymentRepo := pgRepo.NewPaymentRepo(pool)
	userRepo := pgRepo.NewUserRepo(pool)

	// Use cases.
	underwriter := service.NewUnderwritingEngine()
	scheduleDefaults := usecase.ScheduleDefaults{
		AnnualRatePercent: cfg.Schedule.DefaultRatePercent,
		TenureMonths:      cfg.Schedule.DefaultTenureMonths,
	}

	registerUC := usecase.NewRegisterUserUseCase(userRepo, publisher, jwtSvc)
	loginUC := usecase.NewLoginUserUseCase(userRepo, jwtSvc)
	submitUC := usecase.NewSubmitLoanApplicationUseCase(appRepo, publisher, underwriter, cfg.Schedule.DefaultRatePercent)
	reviewUC := usecase.NewReviewLoanApplicationUseCase(appRepo, publisher)
	disburseUC := usecase.NewDisburseLoanUseCase(appRepo, loanRepo, publisher)
	recordPaymentUC := usecase.NewRecordPaymentUseCase(loanRepo, paymentRepo, publisher)
	settlePaymentUC := usecase.NewSettlePaymentUseCase(loanRepo, paymentRepo, publisher)
	getAppUC := usecase.NewGetApplicationUseCase(appRepo)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo, paymentRepo)
	loanScheduleUC := usecase.NewGetLoanScheduleUseCase(loanRepo, scheduleCache, logger, cfg.Schedule.CacheTTL)
	computeUC := usecase.NewComputeScheduleUseCase(logger, scheduleDefaults)

	// Seed the admin account.
	seedCtx, seedCancel := context.WithTimeout(ctx, 10*time.Second)
	defer seedCancel()
	if err := usecase.NewEnsureAdminUseCase(userRepo, logger).Execute(seedCtx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		logger.Error("failed to seed admin account", "error", err)
		os.Exit(1)
	}

	// HTTP routes.
	mux := http.NewServeMux()
	rest.NewHealthHandler(logger, map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	}).RegisterRoutes(mux)
	rest.NewAuthHandler(registerUC, loginUC).RegisterRoutes(mux)
	rest.NewApplicationHandler(submitUC, reviewUC, disburseUC, getAppUC).RegisterRoutes(mux)
	rest.NewLoanHandler(getLoanUC, loanScheduleUC, computeUC).RegisterRoutes(mux)
	rest.NewPaymentHandler(recordPaymentUC, settlePaymentUC).RegisterRoutes(mux)

	// Middleware chain: logging -> rate limit -> auth.
	authMw := auth.Middleware(jwtSvc, []string{
		"/api/v1/auth/",
		"/healthz",
		"/readyz",
	})
	limiter := rest.NewRateLimiter(100)
	handler := rest.LoggingMiddleware(logger)(rest.RateLimitMiddleware(limiter)(authMw(mux)))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", metrics.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}

	logger.Info("loanflow stopped")
}
