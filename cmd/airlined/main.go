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

	"airline-ops-backend/config"
	"airline-ops-backend/internal/api"
	"airline-ops-backend/internal/auth"
	"airline-ops-backend/internal/db"
	"airline-ops-backend/internal/events"
	"airline-ops-backend/internal/feed"
	"airline-ops-backend/internal/mw"
	"airline-ops-backend/internal/notification"
	"airline-ops-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "airline-backend ", log.LstdFlags)

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

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB, store.WithQueryTimeout(cfg.Database.QueryTimeout()))
	logger.Println("data store initialized")

	deps := api.Deps{
		Store:  appStore,
		Issuer: auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL),
		Retry:  cfg.Booking,
	}

	if cfg.Push.Enabled() {
		deps.WebPush = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, deps.WebPush)
		pool.Start(ctx)
		deps.Notifier = pool
		logger.Printf("push notifications enabled with %d workers", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys not configured; push notifications disabled")
	}

	if cfg.Events.NATSURL != "" {
		publisher, err := events.Connect(cfg.Events.NATSURL, cfg.Events.SubjectPrefix)
		if err != nil {
			logger.Fatalf("failed to connect event publisher: %v", err)
		}
		defer publisher.Close()
		deps.Events = publisher
		logger.Printf("publishing events to %s", cfg.Events.NATSURL)
	}

	var responses mw.ResponseCache
	if cfg.Cache.Backend == "redis" {
		redisCache, err := mw.NewRedisCache(ctx, cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB)
		if err != nil {
			logger.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisCache.Close()
		responses = redisCache
		logger.Printf("response cache backed by redis at %s", cfg.Cache.Redis.Addr)
	}

	// Run the operations feed poller in the background
	feedSvc := feed.NewService(cfg.Feed, appStore)
	go feedSvc.Run(ctx)

	router := api.NewRouter(deps, cfg.Server, responses)
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

	<-stop
	logger.Println("Shutdown signal received, stopping services...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
