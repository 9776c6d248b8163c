// Package main is the entry point for the mockup API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mockupstudio/internal/ai"
	"mockupstudio/internal/auth"
	"mockupstudio/internal/cache"
	"mockupstudio/internal/config"
	"mockupstudio/internal/database"
	"mockupstudio/internal/designs"
	"mockupstudio/internal/handlers"
	"mockupstudio/internal/middleware"
	"mockupstudio/internal/router"
	"mockupstudio/internal/storage"
	"mockupstudio/internal/store"
)

func main() {
	// Load configuration from environment variables (and .env if present).
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: JSON in production, text elsewhere. Debug output
	// only in development.
	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}
	var handler slog.Handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	if cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	userStore := store.NewUserStore(db)
	designStore := store.NewDesignStore(db)

	verifier, err := auth.NewVerifier(auth.Config{
		PublicKeyPEM: cfg.JWTPublicKey,
		Secret:       cfg.JWTSecret,
		Issuer:       cfg.JWTIssuer,
		Audience:     cfg.JWTAudience,
	})
	if err != nil {
		slog.Error("failed to initialize token verifier", "error", err)
		os.Exit(1)
	}

	svcCfg := designs.Config{GenerationTimeout: cfg.GenerationTimeout}

	// Per-user generation quota in Valkey. A zero quota disables it.
	if cfg.GenerationQuota > 0 {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		svcCfg.Limiter = cache.NewQuota(valkeyClient, cfg.GenerationQuota, cfg.GenerationWindow)
		slog.Info("generation quota enabled", "limit", cfg.GenerationQuota, "window", cfg.GenerationWindow)
	} else {
		slog.Warn("generation quota disabled")
	}

	// S3-compatible export storage (optional, app works without it).
	storageClient, err := storage.New(storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		PublicURL: cfg.S3PublicURL,
	})
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		svcCfg.Publisher = storageClient
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", storageClient.Bucket())
	} else {
		slog.Warn("s3 storage not configured, exports disabled")
	}

	// Initialize the AI provider registry with all configured providers.
	aiRegistry := ai.NewRegistry(cfg.AIProvider, map[string]ai.ProviderConfig{
		"openai":  {APIKey: cfg.OpenAIKey, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL},
		"gemini":  {APIKey: cfg.GeminiKey, Model: cfg.GeminiModel, BaseURL: cfg.GeminiBaseURL},
		"claude":  {APIKey: cfg.ClaudeKey, Model: cfg.ClaudeModel, BaseURL: cfg.ClaudeBaseURL},
		"mistral": {APIKey: cfg.MistralKey, Model: cfg.MistralModel, BaseURL: cfg.MistralBaseURL},
	})
	if !aiRegistry.HasProvider(cfg.AIProvider) {
		slog.Warn("active ai provider has no api key, generation will fail", "provider", cfg.AIProvider)
	}
	slog.Info("ai providers initialized",
		"active", aiRegistry.ActiveName(),
		"available", aiRegistry.Available(),
	)

	svc := designs.NewService(designStore, ai.NewScreenGenerator(aiRegistry), svcCfg)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		defer rateLimiter.Stop()
	}

	r := router.New(router.Options{
		Verifier:    verifier,
		Users:       userStore,
		Designs:     handlers.NewDesigns(svc),
		RateLimiter: rateLimiter,
		CORSOrigins: cfg.CORSOrigins,
	})

	// WriteTimeout must exceed the generation timeout so a slow provider
	// surfaces as a 502 rather than a dropped connection.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.GenerationTimeout + 30*time.Second,
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
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
