// Package main is the entry point for the SecurePass API server.
// It loads configuration, connects to the selected storage backend, sets up
// routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"securepass/internal/archive"
	"securepass/internal/cache"
	"securepass/internal/config"
	"securepass/internal/database"
	"securepass/internal/handlers"
	"securepass/internal/middleware"
	"securepass/internal/persist"
	"securepass/internal/router"
	"securepass/internal/session"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"backend", cfg.Backend,
	)

	backend, closeBackend, err := openBackend(cfg)
	if err != nil {
		slog.Error("failed to open storage backend", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer closeBackend.Close()

	// Connect to S3-compatible object storage (optional; archive export is
	// disabled without it).
	var archiver handlers.Archiver
	archiveClient, err := archive.New(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		slog.Error("failed to initialize S3 archive", "error", err)
		os.Exit(1)
	}
	if archiveClient != nil {
		archiver = archiveClient
		slog.Info("s3 archive connected", "endpoint", cfg.S3Endpoint, "bucket", archiveClient.Bucket())
	} else {
		slog.Warn("s3 archive not configured; archive export disabled")
	}

	secureCookies := cfg.SecureCookies()
	api := handlers.NewAPI(backend, archiver)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		defer limiter.Stop()
	}

	r := router.New(api, session.NewVaults(secureCookies), router.Options{
		Secure:  secureCookies,
		Limiter: limiter,
	})

	// Create the HTTP server with sensible timeouts.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
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
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return
	}

	slog.Info("server stopped gracefully")
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openBackend returns the per-request backend for cfg.Backend and the
// resource to release on shutdown.
func openBackend(cfg *config.Config) (handlers.BackendFunc, io.Closer, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		slog.Warn("memory backend selected; vaults are lost on restart")
		return handlers.SharedBackend(persist.NewMemory()), nopCloser{}, nil

	case config.BackendValkey:
		client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, cfg.ValkeyDB)
		if err != nil {
			return nil, nil, err
		}
		return handlers.SharedBackend(persist.NewValkey(client)), client, nil

	case config.BackendPostgres:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		pg := persist.NewPostgres(db)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if n, err := pg.PurgeExpired(ctx); err != nil {
			slog.Warn("failed to purge expired vault blobs", "error", err)
		} else if n > 0 {
			slog.Info("purged expired vault blobs", "count", n)
		}
		return handlers.SharedBackend(pg), db, nil

	default:
		return handlers.CookieBackend(cfg.SecureCookies()), nopCloser{}, nil
	}
}
