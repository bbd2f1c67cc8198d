package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/videofront/videofront-embed-go/internal/block"
	"github.com/videofront/videofront-embed-go/internal/config"
	"github.com/videofront/videofront-embed-go/internal/handler"
	"github.com/videofront/videofront-embed-go/internal/i18n"
	"github.com/videofront/videofront-embed-go/internal/middleware"
	"github.com/videofront/videofront-embed-go/internal/models"
	"github.com/videofront/videofront-embed-go/internal/repository"
	"github.com/videofront/videofront-embed-go/internal/service"
	"github.com/videofront/videofront-embed-go/internal/validation"
	"github.com/videofront/videofront-embed-go/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Log.Error("Server exited with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	translator, err := i18n.NewTranslator()
	if err != nil {
		return fmt.Errorf("build message catalog: %w", err)
	}

	if cfg.Videofront.Host == "" || cfg.Videofront.Token == "" {
		logger.Log.Warn("Videofront settings are incomplete, every view will report a configuration message",
			zap.Bool("hostSet", cfg.Videofront.Host != ""),
			zap.Bool("tokenSet", cfg.Videofront.Token != ""),
		)
	}

	resolver := service.NewResolver(cfg.Videofront.Timeout)
	viewer := block.NewViewer(resolver, translator)
	settings := models.Credentials{Host: cfg.Videofront.Host, Token: cfg.Videofront.Token}
	viewHandler := handler.NewViewHandler(viewer, translator, settings, block.New(cfg.Block))

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	router.GET("/api/v1/videos/:id/view", viewHandler.StudentView)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health/live", handler.NewHealthHandler(nil, nil).LivenessProbe)

	if cfg.Tracking.Enabled {
		cleanup, err := setupTracking(router, cfg)
		if err != nil {
			return err
		}
		defer cleanup()
	} else {
		router.GET("/health/ready", handler.NewHealthHandler(nil, nil).ReadinessProbe)
		logger.Log.Info("Player tracking disabled")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Videofront.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("Server starting",
			zap.Int("port", cfg.Server.Port),
			zap.String("videofrontHost", cfg.Videofront.Host),
		)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Log.Error("Failed to close server", zap.Error(closeErr))
			}
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}

		logger.Log.Info("Server stopped gracefully")
		return nil
	}
}

// setupTracking connects the tracking pipeline and registers its routes.
// The returned function releases the database pool and broker connection.
func setupTracking(router *gin.Engine, cfg *config.Config) (func(), error) {
	ctx := context.Background()

	pool, err := initDatabase(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("initialize database: %w", err)
	}
	logger.Log.Info("Database connection established",
		zap.Int32("maxConns", pool.Config().MaxConns),
	)

	repo := repository.New(pool)
	if err := repo.Migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	publisher, err := service.NewMessagePublisher(&cfg.RabbitMQ)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("initialize publisher: %w", err)
	}

	validator := validation.New(cfg.Tracking.MaxPayloadSize, cfg.Tracking.ValidationEnabled)
	trackingHandler := handler.NewTrackingHandler(service.NewTrackingService(repo, publisher, validator))

	events := router.Group("/api/v1/events")
	if len(cfg.Tracking.APIKeys) > 0 {
		events.Use(middleware.NewAPIKeyAuth(cfg.Tracking.APIKeys).Handler())
	} else {
		logger.Log.Warn("No tracking API keys configured, event ingestion is open")
	}
	events.POST("", trackingHandler.HandleEvent)

	eventsHandler := handler.NewEventsHandler(repo)
	events.GET("", eventsHandler.List)
	events.GET("/:id", eventsHandler.Get)

	router.GET("/health/ready", handler.NewHealthHandler(repo, publisher).ReadinessProbe)

	logger.Log.Info("Player tracking enabled",
		zap.String("exchange", cfg.RabbitMQ.Exchange),
		zap.String("queue", cfg.RabbitMQ.Queue),
	)

	return func() {
		if err := publisher.Close(); err != nil {
			logger.Log.Error("Failed to close publisher", zap.Error(err))
		}
		pool.Close()
	}, nil
}

func initDatabase(ctx context.Context, cfg *config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConnections)
	poolConfig.MinConns = int32(cfg.MinConnections)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
