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
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ADPer0705/parsec/internal/adapter/client"
	"github.com/ADPer0705/parsec/internal/adapter/http/router"
	"github.com/ADPer0705/parsec/internal/domain/service"
	"github.com/ADPer0705/parsec/internal/infrastructure/cache"
	"github.com/ADPer0705/parsec/internal/infrastructure/config"
	"github.com/ADPer0705/parsec/internal/infrastructure/database"
	"github.com/ADPer0705/parsec/internal/infrastructure/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Load vocabulary
	vocab, err := service.DefaultVocabulary()
	if err != nil {
		return fmt.Errorf("failed to load vocabulary: %w", err)
	}
	if cfg.Vocabulary.Path != "" {
		vocab, err = service.LoadVocabulary(cfg.Vocabulary.Path)
		if err != nil {
			return fmt.Errorf("failed to load vocabulary: %w", err)
		}
		log.Info("Loaded vocabulary file", zap.String("path", cfg.Vocabulary.Path))
	}

	heuristic := service.NewHeuristicClassifier(vocab)

	// The classification engine defaults to the heuristic path. When the
	// model sidecar is enabled and reachable at startup it takes over,
	// with the heuristic kept as its fallback.
	var engine service.Classifier = heuristic
	var modelClient *client.ZeroShotClient
	if cfg.Model.Enabled {
		probe := client.NewZeroShotClient(cfg.Model.URL, cfg.Model.Timeout)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := probe.Ready(ctx)
		cancel()
		if err != nil {
			log.Warn("Model sidecar unavailable, running heuristic-only", zap.Error(err))
		} else {
			modelClient = probe
			engine = client.NewZeroShotClassifier(modelClient, heuristic, vocab, log)
			log.Info("Connected to model sidecar", zap.String("url", cfg.Model.URL))
		}
	}

	// Initialize database (optional, decision log disabled without it)
	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Connected to database")

		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Database migrations completed")
	}

	// Initialize Redis (optional, continue without it)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			log.Info("Connected to Redis")
		}
	}

	// Setup router
	r := router.Setup(router.Dependencies{
		Engine:      engine,
		ModelClient: modelClient,
		DB:          db,
		Redis:       redisClient,
		Logger:      log,
		CacheTTL:    cfg.Redis.TTL,
	})

	// Create HTTP server
	addr := cfg.Server.ListenAddr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close database connection
	if db != nil {
		if sqlDB, err := db.DB(); err == nil && sqlDB != nil {
			_ = sqlDB.Close()
		}
	}

	// Close Redis connection
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return nil
}
