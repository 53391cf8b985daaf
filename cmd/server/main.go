package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cardfolio/cardfolio/internal/http/health"
	"github.com/cardfolio/cardfolio/internal/http/v1/routes"
	"github.com/cardfolio/cardfolio/internal/platform/auth"
	appfirebase "github.com/cardfolio/cardfolio/internal/platform/firebase"
	applog "github.com/cardfolio/cardfolio/internal/platform/logging"
	appmiddleware "github.com/cardfolio/cardfolio/internal/platform/middleware"
	"github.com/cardfolio/cardfolio/internal/platform/storage"
	"github.com/cardfolio/cardfolio/internal/service/account"
	profilesvc "github.com/cardfolio/cardfolio/internal/service/profile"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	_ = godotenv.Load()

	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	ctx := context.Background()
	clients, err := appfirebase.InitializeClients(ctx, appfirebase.Config{
		ProjectID:                    os.Getenv("FIREBASE_PROJECT_ID"),
		StorageBucket:                os.Getenv("STORAGE_BUCKET"),
		GoogleApplicationCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	})
	if err != nil {
		applog.LogFatal(ctx, "firebase initialization failed", err)
	}
	defer func() {
		if err := clients.Close(); err != nil {
			applog.LogError(context.Background(), "client close error", err)
		}
	}()

	verifier := auth.NewFirebaseVerifier(clients.Auth)
	accounts := account.NewFirestoreDirectory(clients.Firestore)
	store := profilesvc.NewFirestoreStore(clients.Firestore)
	media := storage.NewGCSStorage(clients.Storage, os.Getenv("STORAGE_BUCKET"))
	service := profilesvc.NewService(accounts, store, media)

	router := chi.NewRouter()

	// Base middleware stack. Preflight must come first so OPTIONS requests
	// are answered before any path canonicalization or method matching.
	router.Use(
		appmiddleware.Preflight("/"),
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// RequestSize bounds bodies; image uploads need headroom beyond a
		// typical JSON limit.
		chimiddleware.RequestSize(12<<20), // 12 MB limit
		applog.RequestLogger(),
		applog.AccessLogger(),
		appmiddleware.Recoverer(),
	)

	router.Get("/healthz", health.Handler)

	cfg := huma.DefaultConfig("Cardfolio API", Version)
	cfg.DocsPath = "/api-docs"
	api := humachi.New(router, cfg)

	routes.Register(api, verifier, service, os.Getenv("MEDIA_BASE_URL"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(context.Background(), "server exited")
}
