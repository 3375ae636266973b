package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"labtrack-backend/internal/audit"
	"labtrack-backend/internal/auth"
	"labtrack-backend/internal/cache"
	"labtrack-backend/internal/handlers"
	mw "labtrack-backend/internal/middleware"
	"labtrack-backend/internal/storage"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if os.Getenv("JWT_SECRET") == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	// Database connection (with retries)
	var db *sqlx.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("postgres", buildDSN())
		if err == nil {
			break
		}
		logger.Warn("DB connection attempt failed", zap.Int("attempt", i+1), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("connected to database")

	// Redis (login/registration rate limiting only; authorization
	// decisions are never cached)
	redisClient, err := cache.NewRedisClient()
	if err != nil {
		logger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Audit trail over NATS, optional
	var auditLog *audit.Publisher
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		auditLog, err = audit.Connect(natsURL, logger)
		if err != nil {
			logger.Fatal("failed to connect to NATS", zap.Error(err))
		}
		defer auditLog.Close()
	} else {
		logger.Warn("NATS_URL not set; audit trail disabled")
	}

	store := storage.NewStorage(db)
	verifier := auth.NewVerifier(store)
	authHandler := auth.NewHandler(store, auditLog, logger)
	h := handlers.New(store, auditLog, logger)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Public bootstrap and auth endpoints
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimitRegister(redisClient))
		r.Post("/v1/tenants/register", h.RegisterTenant)
	})
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimitLogin(redisClient))
		r.Post("/v1/auth/login", authHandler.Login)
	})
	r.Post("/v1/auth/refresh", authHandler.Refresh)

	// Everything else requires a verified access context
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(verifier, logger))
		r.Get("/v1/auth/me", authHandler.Me)
		h.RegisterRoutes(r)
	})

	server := &http.Server{
		Addr:    ":" + getEnv("PORT", "8080"),
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("server starting", zap.String("addr", server.Addr))
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func buildDSN() string {
	return "host=" + getEnv("DB_HOST", "localhost") +
		" user=" + getEnv("DB_USER", "labtrack") +
		" password=" + getEnv("DB_PASSWORD", "labtrack") +
		" dbname=" + getEnv("DB_NAME", "labtrack") +
		" sslmode=" + getEnv("DB_SSLMODE", "disable")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
