// Package main is the entry point for the application.
// It initializes all dependencies, sets up the HTTP server,
// and starts the application.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"usercenter/internal/config"
	"usercenter/internal/repositories"
	"usercenter/internal/repositories/cache"
	"usercenter/internal/repositories/memory"
	"usercenter/internal/routes"
	"usercenter/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// main initializes and starts the HTTP server.
// It performs the following setup:
// - Loads configuration
// - Opens the store (PostgreSQL or in-memory) and the Redis cache
// - Configures routes
// - Serves until SIGINT or SIGTERM
func main() {
	cfg := config.Load()

	store, db := openStore(cfg)
	if db != nil {
		defer repositories.CloseDB(db)
		go logPoolStats(db)
	}

	cacheRepo, closeCache := openCache(cfg)
	defer closeCache()

	app := fiber.New(fiber.Config{
		AppName:      "usercenter",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return response.Error(c, fe.Code, "HTTP_ERROR", fe.Message)
			}
			log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
			return response.DomainError(c, err)
		},
	})

	app.Use(recover.New())

	// CORS middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD",
		AllowCredentials: true,
	}))

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Routes
	if err := routes.SetupRoutes(app, routes.Dependencies{
		Config: cfg,
		Store:  store,
		Cache:  cacheRepo,
	}); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}

func openStore(cfg *config.Config) (repositories.Store, *gorm.DB) {
	switch cfg.StorageDriver {
	case "memory":
		log.Println("Using in-memory store; data is lost on restart")
		return memory.NewStore(), nil
	case "postgres":
		db, err := repositories.InitDB(cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		return repositories.NewStore(db), db
	default:
		log.Fatalf("Unknown STORAGE_DRIVER %q", cfg.StorageDriver)
		return nil, nil
	}
}

func openCache(cfg *config.Config) (repositories.CacheRepository, func()) {
	if !cfg.RedisEnabled() {
		log.Println("REDIS_HOST not set, caching disabled")
		return cache.NewNoop(), func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := cache.Connect(ctx, cache.NewRedisConfig(cfg))
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	svc := cache.NewCacheService(client, cfg.CacheTTL, cfg.HistoryTTL)
	go logCacheStats(svc)
	return svc, func() {
		if err := svc.Close(); err != nil {
			log.Printf("Failed to close Redis connection: %v", err)
		}
	}
}

// logPoolStats periodically logs database connection pool statistics
func logPoolStats(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Failed to get database instance: %v", err)
		return
	}

	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		stats := sqlDB.Stats()
		log.Printf("DB Stats: Open=%d, Idle=%d, InUse=%d, WaitCount=%d, WaitDuration=%s",
			stats.OpenConnections, stats.Idle, stats.InUse, stats.WaitCount, stats.WaitDuration)
	}
}

// logCacheStats periodically logs Redis connection pool statistics
func logCacheStats(svc *cache.CacheService) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		stats := svc.GetStats()
		log.Printf("Redis Stats: Hits=%d, Misses=%d, Timeouts=%d, TotalConns=%d, IdleConns=%d, StaleConns=%d",
			stats.Hits, stats.Misses, stats.Timeouts, stats.TotalConns, stats.IdleConns, stats.StaleConns)
	}
}
