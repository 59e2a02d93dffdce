// Package main is the entry point for the МонголШоп API server.
// It loads configuration, wires the lazy database accessor and connectivity
// tracker, sets up routing, and starts the HTTP server with graceful
// shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mongolshop/internal/cache"
	"mongolshop/internal/config"
	"mongolshop/internal/connectivity"
	"mongolshop/internal/database"
	"mongolshop/internal/handlers"
	"mongolshop/internal/repo"
	"mongolshop/internal/router"
	"mongolshop/internal/session"
	"mongolshop/internal/storage"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"database", cfg.MongoDB,
	)

	// Connect to Valkey (cache, sessions, and persisted connection state).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyAddr(), cfg.ValkeyPassword, cfg.ValkeyDB)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// The connectivity tracker restores its last persisted state so a
	// restart in offline mode stays offline until the database answers.
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracker := connectivity.New(rootCtx, connectivity.NewValkeyStore(valkeyClient))

	// Lazy database accessor: no connection is made until the first data
	// access, and failures degrade to the built-in sample datasets.
	accessor := database.NewAccessor(cfg.MongoURI, cfg.MongoDB, tracker)
	defer accessor.Close(context.Background())

	// Background reachability watcher keeps the tracker honest.
	go accessor.Watch(rootCtx, cfg.ProbeInterval)

	// In development, eagerly connect, create indexes, and seed samples so
	// the API serves remote data instead of the offline fallback.
	if cfg.IsDev() {
		if db := accessor.Handle(); db != nil {
			initCtx, cancel := context.WithTimeout(rootCtx, 30*time.Second)
			if err := database.EnsureIndexes(initCtx, db); err != nil {
				slog.Warn("index creation failed, equality queries will scan", "error", err)
			}
			if err := database.Seed(initCtx, db); err != nil {
				slog.Warn("seeding failed", "error", err)
			}
			cancel()
		} else {
			slog.Warn("database unreachable at startup, serving sample data")
		}
	}

	// Sessions: Secure cookies everywhere except development.
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, cfg.SessionCookie, secureCookies, cfg.SessionTTL)

	// Repositories over the shared accessor.
	stores := repo.NewStoreRepo(accessor, tracker)
	categories := repo.NewCategoryRepo(accessor, tracker, stores)
	reviews := repo.NewReviewRepo(accessor, tracker, stores)
	users := repo.NewUserRepo(accessor, tracker)
	settings := repo.NewSettingsRepo(accessor, tracker)

	// Listing cache in Valkey.
	listings := cache.NewListingCache(valkeyClient, cache.DefaultListingTTL)

	// Connect to S3-compatible object storage (optional — app works without it).
	mediaClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if mediaClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — media uploads disabled")
	}

	// Create handler groups with their dependencies.
	publicHandlers := handlers.NewPublic(stores, categories, reviews, settings, listings)
	authHandlers := handlers.NewAuth(sessionStore, users)
	adminHandlers := handlers.NewAdmin(stores, categories, reviews, users, settings, listings, accessor, tracker, mediaClient)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, publicHandlers, authHandlers, adminHandlers)

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	<-rootCtx.Done()
	slog.Info("shutdown signal received")

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
