package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/cache"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/config"
	delivery "github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/delivery/http"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/identity"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/repository"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/internal/console/service"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/logger"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/postgres"
	"github.com/kaguna7-ai/ADVANCEDFOREXBOT/pkg/redis"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the trading console service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Console Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize identity provider client
	identityClient, err := identity.NewClient(cfg.Identity, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize identity client", logger.ErrorField(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	accountRepo := repository.NewAccountRepository(db.DB)
	settingsRepo := repository.NewSettingsRepository(db.DB)
	tradeRepo := repository.NewTradeRepository(db.DB)

	// Initialize stats cache
	statsCacheTTL := 30 * time.Second
	if cfg.Console.StatsCacheTTL != "" {
		statsCacheTTL, err = time.ParseDuration(cfg.Console.StatsCacheTTL)
		if err != nil {
			appLogger.Fatal("Invalid stats cache TTL", logger.ErrorField(err))
		}
	}
	statsCache := cache.NewRedisStatsCache(redisClient, statsCacheTTL, appLogger)

	// Initialize services
	accountSvc := service.NewAccountService(accountRepo, appLogger)
	settingsSvc := service.NewSettingsService(settingsRepo, appLogger)
	dashboardSvc := service.NewDashboardService(userRepo, accountRepo, tradeRepo, statsCache, appLogger)

	// Start janitor
	purgeSchedule := cfg.Console.PurgeSchedule
	if purgeSchedule == "" {
		purgeSchedule = "0 3 * * *"
	}
	retentionDays := cfg.Console.PurgeRetentionDays
	if retentionDays <= 0 {
		retentionDays = 30
	}
	janitor := service.NewJanitorService(accountRepo, purgeSchedule, time.Duration(retentionDays)*24*time.Hour, appLogger)
	if err := janitor.Start(); err != nil {
		appLogger.Fatal("Failed to start janitor", logger.ErrorField(err))
	}
	defer janitor.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Validator = delivery.NewRequestValidator()
	e.Use(middleware.Recover())

	// Initialize handlers and routes
	session := delivery.SessionMiddleware(identityClient, appLogger)
	apiV1 := e.Group("/api/v1")

	accountHandler := delivery.NewAccountHandler(accountSvc, appLogger)
	accountsGroup := apiV1.Group("/accounts", session)
	accountHandler.RegisterRoutes(accountsGroup)

	settingsHandler := delivery.NewSettingsHandler(settingsSvc, appLogger)
	settingsGroup := apiV1.Group("/settings", session)
	settingsHandler.RegisterRoutes(settingsGroup)

	dashboardHandler := delivery.NewDashboardHandler(dashboardSvc, appLogger)
	dashboardGroup := apiV1.Group("", session)
	dashboardHandler.RegisterRoutes(dashboardGroup)

	authHandler := delivery.NewAuthHandler(identityClient, appLogger)
	authGroup := apiV1.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "console-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-console.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing console-service CLI: %s\n", err)
		os.Exit(1)
	}
}
