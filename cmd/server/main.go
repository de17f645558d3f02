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
	"github.com/stwalsh4118/rentbuy/internal/config"
	"github.com/stwalsh4118/rentbuy/internal/database"
	"github.com/stwalsh4118/rentbuy/internal/handlers"
	"github.com/stwalsh4118/rentbuy/internal/logger"
	"github.com/stwalsh4118/rentbuy/internal/middleware"
	"github.com/stwalsh4118/rentbuy/internal/models"
	"github.com/stwalsh4118/rentbuy/internal/presets"
	"github.com/stwalsh4118/rentbuy/internal/repository"
	"github.com/stwalsh4118/rentbuy/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
	startupTimeout  = 15 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.NewWithWriter(os.Stdout, cfg.Server.Env, cfg.Server.LogLevel)
	log.Info("Starting rent vs buy API", map[string]interface{}{
		"version":       handlers.APIVersion,
		"environment":   cfg.Server.Env,
		"port":          cfg.Server.Port,
		"preset_source": cfg.Presets.Source,
	})

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), startupTimeout)
	presetRepo, closeStore, err := openPresetStore(startupCtx, cfg, log)
	cancelStartup()
	if err != nil {
		log.Fatal("Failed to open preset store", err, map[string]interface{}{
			"source": cfg.Presets.Source,
		})
	}
	defer closeStore()

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(presetRepo, cfg.Server.Env, cfg.Presets.Source)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Initialize service layer
	presetService := services.NewPresetService(presetRepo, log)
	scenarioService := services.NewScenarioService(presetService, log)

	// Initialize handlers
	presetHandler := handlers.NewPresetHandler(presetService)
	scenarioHandler := handlers.NewScenarioHandler(scenarioService)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	defer limiter.Stop()

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimit(limiter))
	{
		presetRoutes := v1.Group("/presets")
		{
			presetRoutes.GET("", presetHandler.List)
			presetRoutes.GET("/:id", presetHandler.Get)
		}

		scenarios := v1.Group("/scenarios")
		{
			scenarios.GET("/defaults", scenarioHandler.Defaults)
			scenarios.POST("/simulate", scenarioHandler.Simulate)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}

// openPresetStore builds the preset repository for the configured source.
// The returned func releases any database handle.
func openPresetStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.PresetRepository, func(), error) {
	seed, err := loadSeedPresets(cfg)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Presets.Source {
	case config.PresetSourcePostgres:
		db, err := database.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}

		inserted, err := repository.EnsurePostgresSchema(ctx, db, seed)
		if err != nil {
			db.Close()
			return nil, nil, err
		}

		log.Info("Database connection established", map[string]interface{}{
			"host":           cfg.Database.Host,
			"port":           cfg.Database.Port,
			"database":       cfg.Database.Name,
			"pool_min":       cfg.Database.PoolMin,
			"pool_max":       cfg.Database.PoolMax,
			"presets_seeded": inserted,
		})
		return repository.NewPostgresPresetRepository(db), db.Close, nil

	case config.PresetSourceSQLite:
		db, err := database.NewSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}

		inserted, err := repository.EnsureSQLiteSchema(ctx, db, seed)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		log.Info("SQLite database opened", map[string]interface{}{
			"path":           cfg.SQLite.Path,
			"presets_seeded": inserted,
		})
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close SQLite database", err, nil)
			}
		}
		return repository.NewSQLitePresetRepository(db), closeDB, nil

	default:
		log.Info("Using in-memory presets", map[string]interface{}{
			"count": len(seed),
			"file":  cfg.Presets.File,
		})
		return repository.NewMemoryPresetRepository(seed), func() {}, nil
	}
}

// loadSeedPresets returns the presets from PRESET_FILE, or the embedded set.
func loadSeedPresets(cfg *config.Config) ([]models.RegionalPreset, error) {
	if cfg.Presets.File != "" {
		return presets.LoadFile(cfg.Presets.File)
	}
	return presets.LoadEmbedded()
}
