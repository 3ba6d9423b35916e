package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/emi-service/internal/config"
	"github.com/Dan9191/emi-service/internal/handler"
	"github.com/Dan9191/emi-service/internal/integrations/cbr"
	"github.com/Dan9191/emi-service/internal/jobs"
	"github.com/Dan9191/emi-service/internal/repository"
	"github.com/Dan9191/emi-service/internal/service"
	"github.com/Dan9191/emi-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lenders, err := config.LoadLenderRates(cfg.LenderRatesFile)
	if err != nil {
		logger.Fatalf("Failed to load lender rates: %v", err)
	}

	// Initialize storage
	var store service.Store
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			logger.Fatalf("Failed to ping database: %v", err)
		}
		repo := repository.NewRepository(db)
		if err := repo.Migrate(ctx); err != nil {
			logger.Fatalf("Failed to migrate database: %v", err)
		}
		store = repo
	default:
		logger.Warn("Using in-memory storage, calculations are lost on restart")
		store = repository.NewMemoryRepository()
	}

	var cache repository.CacheRepository = repository.NewMemoryCache()
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			logger.Fatalf("Failed to ping redis: %v", err)
		}
		cache = redisCache
	}

	// Initialize layers
	cbrClient := cbr.NewCBRClient(cfg, logger)
	mailer := email.NewSender(cfg, logger)
	svc := service.NewService(store, cache, mailer, cbrClient, lenders, logger, cfg)
	h := handler.NewHandler(svc, logger)

	refresher, err := jobs.NewKeyRateRefresher(svc, cfg.KeyRateCron, logger)
	if err != nil {
		logger.Fatalf("Failed to schedule key rate refresh: %v", err)
	}
	refresher.Start(ctx)
	defer refresher.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h, cfg),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Shutdown failed: %v", err)
		}
	}()

	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Server failed: %v", err)
	}
	logger.Info("Server stopped")
}
