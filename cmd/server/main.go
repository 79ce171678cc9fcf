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

	"github.com/joho/godotenv"

	"github.com/AnshRaj112/laporan-backend/internal/config"
	"github.com/AnshRaj112/laporan-backend/internal/database"
	"github.com/AnshRaj112/laporan-backend/internal/handlers"
	"github.com/AnshRaj112/laporan-backend/internal/logging"
	"github.com/AnshRaj112/laporan-backend/internal/middleware"
	"github.com/AnshRaj112/laporan-backend/internal/repository"
	"github.com/AnshRaj112/laporan-backend/internal/routes"
	"github.com/AnshRaj112/laporan-backend/internal/services"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Connecting to PostgreSQL...")
	db, err := database.ConnectPostgres(ctx, cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	if err := database.RunMigrations(ctx, db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	log.Println("✅ Database migrations applied")

	log.Printf("Connecting to Redis...")
	rdb, err := database.ConnectRedis(ctx, cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer rdb.Close()

	blobs, err := newBlobStore(ctx, cfg)
	switch {
	case err != nil:
		log.Printf("⚠️  WARNING: blob store %q unavailable: %v", cfg.BlobBackend, err)
		log.Println("   File uploads will not be available")
		blobs = nil
	case blobs == nil:
		log.Println("⚠️  WARNING: no blob store configured. File uploads will not be available")
	default:
		log.Printf("✅ Blob store initialized (%s)", cfg.BlobBackend)
	}

	entryRepo := repository.NewEntryRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessions := services.NewSessionStore(rdb, cfg.SessionTTL)
	auth := services.NewAuthService(userRepo, sessions, logger)

	h := handlers.New(handlers.Handler{
		Entries:     services.NewEntryService(entryRepo, blobs, logger),
		Calendar:    services.NewCalendarService(entryRepo, cfg.Location(), logger),
		Attachments: services.NewAttachmentService(entryRepo, blobs, cfg.MaxUploadBytes, logger),
		Profiles:    services.NewProfileService(userRepo, blobs, cfg.MaxUploadBytes, logger),
		Auth:        auth,
		Location:    cfg.Location(),
		Log:         logger,
	})

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit
	// Non-production: Redis-based rate limit only
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHost, routes.LoginPath) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, host check, per-IP + login rate limiting)")
	} else {
		r.Use(middleware.NewRedisRateLimiter(rdb, logger).Middleware)
	}

	routes.SetupRoutes(r, h, auth)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Laporan backend running on :%s (timezone %s)", cfg.Port, cfg.Location())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}
}

// newBlobStore returns the configured backend, or nil when none is set.
func newBlobStore(ctx context.Context, cfg *config.Config) (services.BlobStore, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendCloudinary:
		return services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	case config.BlobBackendS3:
		return services.NewS3Store(ctx, services.S3Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
		})
	}
	return nil, nil
}
