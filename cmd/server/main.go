package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/roomledger/internal/adapter/http"
	"github.com/iho/roomledger/internal/adapter/http/handler"
	"github.com/iho/roomledger/internal/adapter/parser"
	postgresRepo "github.com/iho/roomledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/roomledger/internal/adapter/repository/redis"
	"github.com/iho/roomledger/internal/infrastructure/auth"
	"github.com/iho/roomledger/internal/infrastructure/config"
	"github.com/iho/roomledger/internal/infrastructure/logger"
	"github.com/iho/roomledger/internal/infrastructure/metrics"
	"github.com/iho/roomledger/internal/infrastructure/postgres"
	"github.com/iho/roomledger/internal/infrastructure/redis"
	"github.com/iho/roomledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations", appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	houseRepo := postgresRepo.NewHouseRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	settlementRepo := postgresRepo.NewSettlementRepository(pool)
	notificationRepo := postgresRepo.NewNotificationRepository(pool)
	choreRepo := postgresRepo.NewChoreRepository(pool)
	eventRepo := postgresRepo.NewEventRepository(pool)
	leaderboardRepo := postgresRepo.NewLeaderboardRepository(pool)
	ruleRepo := postgresRepo.NewRuleRepository(pool)
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Initialize use cases
	notificationUC := usecase.NewNotificationUseCase(notificationRepo)
	houseUC := usecase.NewHouseUseCase(houseRepo, ruleRepo, idGen)
	expenseUC := usecase.NewExpenseUseCase(txManager, houseRepo, expenseRepo, leaderboardRepo, notificationUC, cache, idGen, appLogger)
	settlementUC := usecase.NewSettlementUseCase(txManager, houseRepo, expenseRepo, settlementRepo, notificationUC, cache, idGen, appLogger)
	balanceUC := usecase.NewBalanceUseCase(houseRepo, expenseRepo, cache, appLogger)
	choreUC := usecase.NewChoreUseCase(houseRepo, choreRepo, leaderboardRepo, notificationUC, idGen, appLogger)
	eventUC := usecase.NewEventUseCase(houseRepo, eventRepo, expenseUC, leaderboardRepo, notificationUC, idGen, appLogger)
	leaderboardUC := usecase.NewLeaderboardUseCase(houseRepo, leaderboardRepo, notificationUC, appLogger)

	// Optional AI parser
	var parseHandler *handler.ParseHandler
	if cfg.ParserModel != "" {
		geminiParser, err := parser.NewGeminiParser(ctx, cfg.ParserModel, appLogger)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to initialize parser")
		}
		parseHandler = handler.NewParseHandler(geminiParser)
		appLogger.Info().Str("model", cfg.ParserModel).Msg("ai parser enabled")
	}

	// Optional authentication
	var (
		jwtManager  *auth.JWTManager
		authHandler *handler.AuthHandler
	)
	if cfg.AuthEnabled && cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		authHandler = handler.NewAuthHandler(houseUC, jwtManager)
		appLogger.Info().Msg("authentication enabled")
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		HouseHandler:        handler.NewHouseHandler(houseUC),
		ExpenseHandler:      handler.NewExpenseHandler(expenseUC),
		SettlementHandler:   handler.NewSettlementHandler(settlementUC),
		BalanceHandler:      handler.NewBalanceHandler(balanceUC),
		ChoreHandler:        handler.NewChoreHandler(choreUC),
		EventHandler:        handler.NewEventHandler(eventUC),
		LeaderboardHandler:  handler.NewLeaderboardHandler(leaderboardUC),
		NotificationHandler: handler.NewNotificationHandler(notificationUC),
		ParseHandler:        parseHandler,
		AuthHandler:         authHandler,
		HealthHandler:       handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:    idempotencyStore,
		JWTManager:          jwtManager,
		Logger:              appLogger,
		Metrics:             appMetrics,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
