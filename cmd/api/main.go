//	@title			Image Drop API
//	@version		1.0
//	@description	HTTP gateway for image uploads: bytes go to S3-compatible object storage, metadata to PostgreSQL.
//
//	@host		localhost:8080
//	@BasePath	/

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/imagedrop/service/internal/config"
	"github.com/imagedrop/service/internal/db"
	"github.com/imagedrop/service/internal/health"
	"github.com/imagedrop/service/internal/image"
	appMiddleware "github.com/imagedrop/service/internal/middleware"
	"github.com/imagedrop/service/internal/storage"
	"github.com/imagedrop/service/internal/web"

	_ "github.com/imagedrop/service/docs/swagger"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg)

	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		slog.Error("database migration failed", "err", err)
		os.Exit(1)
	}

	store, err := storage.NewMinioStore(
		cfg.StorageEndpoint,
		cfg.StorageAccessKey,
		cfg.StorageSecretKey,
		cfg.StorageBucket,
		cfg.StoragePublicBase,
		cfg.StorageUseSSL,
	)
	if err != nil {
		slog.Error("object storage init failed", "err", err)
		os.Exit(1)
	}

	// Wire dependencies: repository → service → handler
	imageRepo := image.NewRepository(pool)
	imageSvc := image.NewService(imageRepo, store, cfg.MaxUploadBytes, cfg.UploadTimeout)
	imageHandler := image.NewHandler(imageSvc, cfg.MaxUploadBytes)

	healthHandler := health.NewHandler(imageRepo, cfg.AppEnv)
	webHandler := web.NewHandler()

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler.Check)

	// Swagger UI — available at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Post("/upload/{ownerID}", imageHandler.Upload)
	r.Get("/api/url/{ownerID}", imageHandler.Latest)
	r.Get("/api/images/{ownerID}", imageHandler.List)
	r.Get("/{ownerID}", webHandler.UploadPage)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "port", cfg.Port, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "err", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
