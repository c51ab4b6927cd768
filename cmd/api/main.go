package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/crucial707/asset-inventory/internal/blobcache"
	"github.com/crucial707/asset-inventory/internal/blobstore"
	"github.com/crucial707/asset-inventory/internal/config"
	"github.com/crucial707/asset-inventory/internal/db"
	"github.com/crucial707/asset-inventory/internal/handlers"
	"github.com/crucial707/asset-inventory/internal/middleware"
	"github.com/crucial707/asset-inventory/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
)

// maxUploadBytes caps multipart uploads (10 MiB).
const maxUploadBytes = 10 << 20

func main() {
	// Best-effort: a missing .env file is fine in real deployments.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogger(cfg.LogFormat)

	// Provisioning is best-effort; most deployments create the database out
	// of band, so a failure here is a warning, not a stop.
	if err := db.EnsureDatabase(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass); err != nil {
		slog.Warn("could not provision database", "db", cfg.DBName, "error", err)
	}

	database, err := db.Connect(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass,
		cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.Info("connected to database", "db", cfg.DBName)

	if err := db.Run(db.URL(cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBUser, cfg.DBPass)); err != nil {
		slog.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	if err := db.SeedCategories(context.Background(), database); err != nil {
		slog.Warn("could not seed default categories", "error", err)
	}

	var store blobstore.Store
	if cfg.BlobConfigured() {
		azure, err := blobstore.NewAzureStore(cfg.StorageAccount, cfg.StorageContainer, cfg.StorageSAS)
		if err != nil {
			slog.Error("failed to build blob store client", "error", err)
			os.Exit(1)
		}
		store = azure
	} else {
		slog.Warn("blob storage not configured; file endpoints will answer 503")
	}

	cache := blobcache.New(time.Duration(cfg.CacheTTLSeconds) * time.Second)

	// Entries expire lazily on read; the sweep keeps memory bounded for
	// blobs nobody fetches again.
	sweeper := cron.New()
	if _, err := sweeper.AddFunc("@every 10m", func() {
		if n := cache.PurgeExpired(); n > 0 {
			slog.Debug("purged expired blob cache entries", "count", n)
		}
	}); err != nil {
		slog.Error("failed to schedule cache sweep", "error", err)
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()

	assetHandler := &handlers.AssetHandler{Repo: repo.NewAssetRepo(database)}
	categoryHandler := &handlers.CategoryHandler{Repo: repo.NewCategoryRepo(database)}
	dashboardHandler := &handlers.DashboardHandler{Repo: repo.NewDashboardRepo(database)}
	fileHandler := &handlers.FileHandler{
		Store:           store,
		Cache:           cache,
		UserID:          cfg.UserID,
		AppID:           cfg.AppID,
		CacheTTLSeconds: cfg.CacheTTLSeconds,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.SecurityHeaders(false))

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Asset Management API","status":"running"}`))
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	uploadLimiter := middleware.UploadRateLimiter()

	r.Route("/api", func(r chi.Router) {
		r.Route("/assets", func(r chi.Router) {
			r.Get("/", assetHandler.ListAssets)
			r.With(middleware.MaxBytes(middleware.DefaultMaxBodyBytes)).Post("/", assetHandler.CreateAsset)
			r.Get("/{id}", assetHandler.GetAsset)
			r.With(middleware.MaxBytes(middleware.DefaultMaxBodyBytes)).Put("/{id}", assetHandler.UpdateAsset)
			r.Delete("/{id}", assetHandler.DeleteAsset)
			r.Get("/{id}/history", assetHandler.GetAssetHistory)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.ListCategories)
			r.With(middleware.MaxBytes(middleware.DefaultMaxBodyBytes)).Post("/", categoryHandler.CreateCategory)
			r.With(middleware.MaxBytes(middleware.DefaultMaxBodyBytes)).Put("/{id}", categoryHandler.UpdateCategory)
			r.Delete("/{id}", categoryHandler.DeleteCategory)
		})

		r.Get("/dashboard/summary", dashboardHandler.GetSummary)

		r.Route("/files", func(r chi.Router) {
			r.With(uploadLimiter.Middleware, middleware.MaxBytes(maxUploadBytes)).Post("/upload", fileHandler.Upload)
			r.Get("/*", fileHandler.Get)
		})
	})

	slog.Info("starting server", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	} else {
		handler = slog.NewTextHandler(os.Stderr, nil)
	}
	slog.SetDefault(slog.New(handler))
}
