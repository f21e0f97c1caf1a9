package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"sciequip-backend/config"
	"sciequip-backend/internal/api"
	"sciequip-backend/internal/assistant"
	"sciequip-backend/internal/db"
	"sciequip-backend/internal/notification"
	"sciequip-backend/internal/session"
	"sciequip-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "sciequip-backend ", log.LstdFlags)

	// A .env file may carry CONFIG_PATH and secrets; absence is fine.
	_ = godotenv.Load()

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// Initialize database and seed the demo dataset
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	if err := db.Seed(gormDB); err != nil {
		logger.Fatalf("failed to seed database: %v", err)
	}
	logger.Println("database initialized successfully")

	appStore := store.NewGormStore(gormDB)

	// Session store: in-process by default, Redis when configured.
	var sessions session.Store
	switch cfg.Session.Backend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.RedisAddr,
			Password: cfg.Session.RedisPassword,
			DB:       cfg.Session.RedisDB,
		})
		sessions = session.NewRedisStore(rdb, cfg.Session.TTL)
		logger.Printf("using redis session store at %s", cfg.Session.RedisAddr)
	default:
		sessions = session.NewMemoryStore(cfg.Session.TTL)
		logger.Println("using in-memory session store")
	}

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Push notifications are optional: no VAPID keys, no worker pool.
	var webpushOptions *webpush.Options
	var pool *notification.WorkerPool
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool = notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		pool.Start(ctx)
		logger.Println("push notification worker pool started")
	} else {
		logger.Println("VAPID keys not configured; push notifications disabled")
	}

	aiService := assistant.NewService(cfg.Assistant)
	if !aiService.Configured() {
		logger.Println("assistant API key not configured; AI chat disabled")
	}

	// Initialize router
	router := api.NewRouter(cfg, appStore, sessions, aiService, pool, webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
