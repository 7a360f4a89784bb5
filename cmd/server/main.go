package main

import (
	"context"                          // context package is needed for Redis operations
	"finance_tracker/internal/config"  // Custom package for configuration
	"finance_tracker/internal/db"      // Custom package for database access
	"finance_tracker/internal/router"  // Custom package for routes
	"finance_tracker/internal/service" // Auth and transaction services
	"finance_tracker/internal/store"   // Custom package for persistence
	"finance_tracker/internal/utils"   // Listing cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}

	users, txs := openStores(cfg)

	// Listing cache is optional
	var cache *utils.Cache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		cache = utils.NewCache(redisClient, cfg.CacheTTL)
	}

	authService := service.NewAuthService(users, cfg)
	txService := service.NewTransactionService(users, txs, cache)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r, err := router.New(cfg, authService, txService)
	if err != nil {
		logrus.Fatalf("failed to set up router: %v", err)
	}

	logrus.Info("App is listening to port " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}

// openStores returns the user and transaction stores for the configured driver
func openStores(cfg *config.Config) (store.UserStore, store.TransactionStore) {
	if cfg.DBDriver == config.DriverMemory {
		logrus.Warn("Using in-memory storage, data is lost on restart")
		mem := store.NewMemory()
		return mem.Users(), mem.Transactions()
	}
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	return store.NewGormUserStore(gdb), store.NewGormTransactionStore(gdb)
}
