package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/language-gems/analytics-service/internal/cache"
	"github.com/language-gems/analytics-service/internal/config"
	"github.com/language-gems/analytics-service/internal/events"
	"github.com/language-gems/analytics-service/internal/handlers"
	"github.com/language-gems/analytics-service/internal/repositories/postgres"
	"github.com/language-gems/analytics-service/internal/services"
	"github.com/language-gems/analytics-service/internal/utils"
	"github.com/language-gems/analytics-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	var cacheSvc cache.CacheService
	if cfg.RedisURL != "" {
		redisClient, err := pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("Redis unavailable, upstream lookups go uncached", "error", err)
		} else {
			defer redisClient.Close()
			cacheSvc = cache.NewRedisCache(redisClient, logger)
		}
	}

	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: cfg.KafkaBrokers,
			TopicName:    cfg.KafkaAnalyticsTopic,
			Logger:       utils.ToSlogLogger(logger),
		})
		if err != nil {
			logger.Warn("Kafka unavailable, report events disabled", "error", err)
		} else {
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
		}
	}

	validator := utils.NewValidator()
	repo := postgres.NewRepository(db, cacheSvc, logger, postgres.Options{
		GemEventChunkSize: cfg.GemEventChunkSize,
		UpstreamCacheTTL:  time.Duration(cfg.RosterCacheTTLSeconds) * time.Second,
	})
	analyticsService := services.NewAnalyticsService(repo, publisher, logger, validator)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(analyticsService, validator, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		logger.Info("Shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Server forced to shutdown", "error", err)
		}
	}()

	logger.Info("Starting analytics service", "port", cfg.Port, "environment", cfg.Environment)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
