//	@title			Sky Take-Out Admin API
//	@version		1.0
//	@description	Admin backend for the sky take-out food ordering platform: file upload and dish management.
//
//	@host		localhost:8080
//	@BasePath	/

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"github.com/skytake/service/internal/config"
	"github.com/skytake/service/internal/db"
	"github.com/skytake/service/internal/dish"
	"github.com/skytake/service/internal/metrics"
	appMiddleware "github.com/skytake/service/internal/middleware"
	"github.com/skytake/service/internal/storage"
	"github.com/skytake/service/internal/upload"

	_ "github.com/skytake/service/docs/swagger"
)

func main() {
	cfg, dotenv, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	if !dotenv {
		logger.Info("no .env file found, reading from environment")
	}

	metrics.Init()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("connected to database")

	applied, err := db.Migrate(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}
	logger.Info("database migrations checked", zap.Bool("applied", applied))

	store, err := storage.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("object storage init failed", zap.Error(err))
	}

	// Wire dependencies: repository → service → handler
	dishRepo := dish.NewRepository(pool)
	dishSvc := dish.NewService(dishRepo)
	dishHandler := dish.NewHandler(dishSvc, logger)

	uploadSvc := upload.NewService(store, cfg.UploadTimeout)
	uploadHandler := upload.NewHandler(uploadSvc, cfg.UploadMaxBytes, logger)

	// Router
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(appMiddleware.Logger(logger))
	r.Use(chiMiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", metrics.Handler())

	// Swagger UI at http://localhost:8080/swagger/
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/admin", func(r chi.Router) {
		r.Route("/common", func(r chi.Router) {
			r.With(httprate.LimitByIP(cfg.UploadRateLimit, time.Minute)).
				Post("/upload", uploadHandler.Upload)
		})
		r.Route("/dish", dishHandler.Routes)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UploadTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine; wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.AppEnv),
			zap.String("storage", cfg.StorageDriver),
			zap.String("bucket", cfg.MinioBucket),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
