// Package main is the entry point for the media-search-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"media-search-service/internal/app/service"
	"media-search-service/internal/config"
	"media-search-service/internal/domain"
	"media-search-service/internal/infra/memcache"
	"media-search-service/internal/infra/postgres"
	"media-search-service/internal/infra/postgres/migrations"
	rediscache "media-search-service/internal/infra/redis"
	"media-search-service/internal/infra/trends"
	"media-search-service/internal/job"
	"media-search-service/internal/logger"
	"media-search-service/internal/transport/httpserver"
	"media-search-service/internal/validator"
	"media-search-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting media-search-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repository
	repo := postgres.NewRepository(db, cfg.Search.CDNBaseURL)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Ping Redis to verify connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Select cache backend
	var cache domain.Cache
	switch cfg.Cache.Backend {
	case "redis":
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
	default:
		cache = memcache.New(cfg.Cache.MaxEntries, log.Logger)
	}
	log.Info("result cache configured",
		zap.String("backend", cfg.Cache.Backend),
		zap.Duration("search_ttl", cfg.Cache.SearchTTL),
	)

	// Create trends client and popular-search holder
	trendsClient := trends.New(
		trends.ClientConfig{
			BaseURL: cfg.Trends.BaseURL,
			Timeout: cfg.Trends.Timeout,
			Retry: trends.RetryConfig{
				MaxAttempts: cfg.Trends.Retry.MaxAttempts,
				WaitTime:    cfg.Trends.Retry.WaitTime,
				MaxWaitTime: cfg.Trends.Retry.MaxWaitTime,
			},
			CB: trends.CBConfig{
				MaxRequests:  cfg.Trends.CB.MaxRequests,
				Interval:     cfg.Trends.CB.Interval,
				Timeout:      cfg.Trends.CB.Timeout,
				FailureRatio: cfg.Trends.CB.FailureRatio,
			},
		},
		log.Logger,
	)
	popular := service.NewPopularList(service.DefaultPopularSearches)

	// Create services
	retrievers := []domain.Retriever{
		service.NewExactRetriever(repo),
		service.NewPartialRetriever(repo),
		service.NewFuzzyRetriever(repo, domain.ContainmentSimilarity{}, cfg.Search.FuzzyThreshold),
	}
	suggester := service.NewSuggester(repo, popular, log.Logger)
	searchSvc := service.NewSearchService(
		retrievers,
		suggester,
		repo,
		repo,
		cache,
		service.Config{
			CacheTTL:         cfg.Cache.SearchTTL,
			TierTimeout:      cfg.Search.TierTimeout,
			QuickLimit:       cfg.Search.QuickLimit,
			QuickPeopleLimit: cfg.Search.QuickPeopleLimit,
		},
		log.Logger,
	)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		searchSvc,
		trendsClient,
		popular,
		db,
		v,
		log.Logger,
	)

	// Start popular refresh scheduler with distributed locking
	refresher := job.NewPopularRefresher(
		trendsClient,
		popular,
		job.RefreshConfig{
			Interval:  cfg.Refresh.Interval,
			Timeout:   cfg.Refresh.Timeout,
			OnStartup: cfg.Refresh.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	refresher.Start(cfg.Refresh.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		// Stop scheduler
		refresher.Stop()

		// Shutdown server with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
