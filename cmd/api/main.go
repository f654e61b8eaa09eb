// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/deenhub-app/admin-backend/internal/authz"
	"github.com/deenhub-app/admin-backend/internal/config"
	"github.com/deenhub-app/admin-backend/internal/core"
	"github.com/deenhub-app/admin-backend/internal/dashboard"
	"github.com/deenhub-app/admin-backend/internal/health"
	"github.com/deenhub-app/admin-backend/internal/identity"
	"github.com/deenhub-app/admin-backend/internal/middleware"
	"github.com/deenhub-app/admin-backend/internal/mosque"
	"github.com/deenhub-app/admin-backend/internal/notification"
	"github.com/deenhub-app/admin-backend/internal/push"
	"github.com/deenhub-app/admin-backend/internal/quran"
	"github.com/deenhub-app/admin-backend/internal/report"
	"github.com/deenhub-app/admin-backend/internal/server"
	"github.com/deenhub-app/admin-backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	identityClient := identity.NewClient(cfg.Identity)

	tokenVerifier, err := identity.NewTokenVerifier(ctx, cfg.Identity)
	if err != nil {
		return err
	}
	logger.Info("token verifier initialized",
		"jwks_url", cfg.Identity.JWKSURL,
	)

	fcmClient, err := push.NewFCMClient(ctx, cfg.Firebase)
	if err != nil {
		return err
	}
	logger.Info("fcm client initialized",
		"project_id", cfg.Firebase.ProjectID,
	)

	authzRepo := authz.NewRepository(db.DB)
	authzSvc := authz.NewService(authzRepo, identityClient)
	authzHandler := authz.NewHandler(authzSvc, cfg.App)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, identityClient)
	userHandler := user.NewHandler(userSvc)

	reportRepo := report.NewRepository(db.DB)
	reportSvc := report.NewService(reportRepo)
	reportHandler := report.NewHandler(reportSvc)

	quranRepo := quran.NewRepository(db.DB)
	quranSvc := quran.NewService(quranRepo)
	quranHandler := quran.NewHandler(quranSvc)

	mosqueRepo := mosque.NewRepository(db.DB)
	mosqueSvc := mosque.NewService(mosqueRepo)
	mosqueHandler := mosque.NewHandler(mosqueSvc)

	tokenRepo := notification.NewTokenRepository(db.DB)
	notificationSvc := notification.NewService(tokenRepo, fcmClient)
	notificationHandler := notification.NewHandler(notificationSvc)

	dashboardHandler := dashboard.NewHandler(dashboard.HandlerConfig{
		Repo:       dashboard.NewRepository(db.DB),
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})

	healthHandler := health.NewHandler(db, redis)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(tokenVerifier)
	adminOnly := middleware.RequireAdmin(authzSvc)

	router.Route("/v1", func(r chi.Router) {
		authzHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(adminOnly)

			r.Route("/admin", func(r chi.Router) {
				userHandler.RegisterRoutes(r)
				reportHandler.RegisterRoutes(r)
				quranHandler.RegisterRoutes(r)
				mosqueHandler.RegisterRoutes(r)
				dashboardHandler.RegisterRoutes(r)
			})

			notificationHandler.RegisterRoutes(r)
		})
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
