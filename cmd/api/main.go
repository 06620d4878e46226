// @title           Change Ops API
// @version         1.0
// @description     Change operations console backend

// @host      localhost:8004
// @BasePath  /api/ops

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "change-ops-api/docs" // Swagger docs import

	"change-ops-api/internal/client"
	"change-ops-api/internal/config"
	"change-ops-api/internal/database"
	"change-ops-api/internal/job"
	"change-ops-api/internal/metrics"
	"change-ops-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Server.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Change Ops API",
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env),
		zap.String("base_path", cfg.Server.BasePath),
	)

	// Initialize database
	db, err := database.New(cfg.Database)
	if err != nil {
		logger.Warn("Failed to connect to database on startup, will retry in background",
			zap.Error(err))
		database.NewAsync(cfg.Database, 5*time.Second, logger)
	} else {
		logger.Info("Database connected successfully")

		if err := database.SafeAutoMigrateWithRetry(db, logger, 3); err != nil {
			logger.Warn("Failed to run database migrations", zap.Error(err))
		}
	}

	// Initialize metrics
	m := metrics.NewWithLogger(logger)

	// Database metrics callbacks and pool stats
	if db != nil {
		database.RegisterMetricsCallbacks(db, m)
		statsDone := database.StartDBStatsCollector(db, m, 15*time.Second)
		defer close(statsDone)
	}

	// Initialize redis (non-fatal, the stats cache degrades to recompute)
	if err := database.InitRedis(cfg, logger); err != nil {
		logger.Warn("Failed to connect to redis, dashboard cache disabled", zap.Error(err))
	}

	// Auth service client
	var authClient *client.AuthClient
	if cfg.Auth.ServiceURL != "" {
		authClient = client.NewAuthClient(cfg.Auth.ServiceURL, 5*time.Second, m, logger)
		logger.Info("Auth client initialized", zap.String("auth_service_url", cfg.Auth.ServiceURL))
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:         db,
		Redis:      database.GetRedis(),
		Logger:     logger,
		Metrics:    m,
		JWTSecret:  cfg.Auth.SecretKey,
		BasePath:   cfg.Server.BasePath,
		AuthClient: authClient,
	})

	// Cron: keep the dashboard cache warm
	scheduler := cron.New()
	if db != nil && database.GetRedis() != nil {
		statsJob := job.NewStatsRefreshJob(router.StatsService(db, database.GetRedis(), logger), logger)
		if _, err := scheduler.AddJob("@every 30s", statsJob); err != nil {
			logger.Warn("Failed to schedule stats refresh job", zap.Error(err))
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Change Ops API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
