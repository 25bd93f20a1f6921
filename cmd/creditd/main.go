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

	"github.com/smblend/credit-service/internal/application/usecase"
	"github.com/smblend/credit-service/internal/domain/service"
	"github.com/smblend/credit-service/internal/infrastructure/adapter"
	"github.com/smblend/credit-service/internal/infrastructure/cache"
	"github.com/smblend/credit-service/internal/infrastructure/config"
	"github.com/smblend/credit-service/internal/infrastructure/messaging"
	pgRepo "github.com/smblend/credit-service/internal/infrastructure/persistence/postgres"
	"github.com/smblend/credit-service/internal/platform/kafka"
	"github.com/smblend/credit-service/internal/platform/observability"
	"github.com/smblend/credit-service/internal/platform/postgres"
	grpcPresentation "github.com/smblend/credit-service/internal/presentation/grpc"
	"github.com/smblend/credit-service/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.NewLogger(observability.LogConfig{
		Service: cfg.ServiceName,
		Level:   getEnv("LOG_LEVEL", "info"),
		Format:  getEnv("LOG_FORMAT", "json"),
	})
	slog.SetDefault(logger)

	logger.Info("starting credit-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	analysisMetrics, err := observability.NewAnalysisMetrics(meterProvider, cfg.ServiceName)
	if err != nil {
		logger.Error("failed to register analysis metrics", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	dbCfg := postgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
	}
	pool, err := postgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := postgres.Migrate(dbCfg.DSN(), "file://migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Infrastructure adapters.
	repo := pgRepo.NewAnalysisRepo(pool)

	kafkaProducer := kafka.NewProducer(kafka.Config{Brokers: cfg.Kafka.Brokers})
	defer kafkaProducer.Close()
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	redisCache := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, cache degraded to misses", "error", err)
	}

	memoGen := adapter.NewOpenAIMemoGenerator(adapter.OpenAIMemoConfig{
		APIKey:     cfg.Memo.APIKey,
		Model:      cfg.Memo.Model,
		BaseURL:    cfg.Memo.BaseURL,
		MaxRetries: cfg.Memo.MaxRetries,
	}, logger)

	// Domain services, with deployment threshold overrides applied.
	calculator := service.NewMetricsCalculator(service.DefaultStabilityWeights())
	riskEngine := service.NewRiskEngine(riskConfig(cfg.Thresholds))
	scorer := service.NewScoringEngine(service.DefaultScoreConfig())
	decider := service.NewDecider(decisionPolicy(cfg.Thresholds))

	// Use cases.
	analyzeUC := usecase.NewAnalyzeLoanUseCase(
		repo, publisher, memoGen, redisCache,
		calculator, riskEngine, scorer, decider,
		analysisMetrics, logger,
	)
	quickScoreUC := usecase.NewQuickScoreUseCase(calculator, riskEngine, scorer, logger)
	getUC := usecase.NewGetAnalysisUseCase(repo, redisCache, logger)

	// gRPC server.
	handler := grpcPresentation.NewCreditHandler(analyzeUC, quickScoreUC, getUC)
	grpcServer := grpcPresentation.NewServer(handler, logger)

	// HTTP server: JSON API, health checks, metrics.
	mux := http.NewServeMux()
	rest.NewAnalysesHandler(analyzeUC, quickScoreUC, getUC, logger).RegisterRoutes(mux)
	rest.NewHealthHandler(logger, map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return postgres.HealthCheck(ctx, pool) },
		"redis":    redisCache.Ping,
	}).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	limiter := rest.NewRateLimiter(cfg.RateLimit)
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           rest.RateLimitMiddleware(limiter)(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		logger.Error("meter provider shutdown error", "error", err)
	}

	logger.Info("credit-service stopped")
}

// riskConfig starts from the defaults and applies env overrides.
func riskConfig(t config.ThresholdConfig) service.RiskConfig {
	cfg := service.DefaultRiskConfig()
	if t.MinDSCR > 0 {
		cfg.MinDSCR = t.MinDSCR
	}
	if t.MaxVolatility > 0 {
		cfg.MaxVolatility = t.MaxVolatility
	}
	if t.MaxDebtToRevenue > 0 {
		cfg.MaxDebtToRevenue = t.MaxDebtToRevenue
	}
	return cfg
}

func decisionPolicy(t config.ThresholdConfig) service.DecisionPolicy {
	policy := service.DefaultDecisionPolicy()
	if t.ApproveScore > 0 {
		policy.ApproveScore = t.ApproveScore
	}
	if t.DeclineScore > 0 {
		policy.DeclineScore = t.DeclineScore
	}
	return policy
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
