package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dentalspace/clinic-admin-api/internal/api/router"
	"github.com/dentalspace/clinic-admin-api/internal/app/bootstrap"
	"github.com/dentalspace/clinic-admin-api/internal/appointments"
	"github.com/dentalspace/clinic-admin-api/internal/auth"
	"github.com/dentalspace/clinic-admin-api/internal/bot"
	"github.com/dentalspace/clinic-admin-api/internal/catalog"
	appconfig "github.com/dentalspace/clinic-admin-api/internal/config"
	"github.com/dentalspace/clinic-admin-api/internal/doctors"
	"github.com/dentalspace/clinic-admin-api/internal/observability/metrics"
	"github.com/dentalspace/clinic-admin-api/internal/session"
	"github.com/dentalspace/clinic-admin-api/internal/webhook"
	"github.com/dentalspace/clinic-admin-api/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic admin API",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.SessionSecret == "" {
		logger.Error("SESSION_SECRET is required")
		os.Exit(1)
	}
	if cfg.AdminPasswordHash == "" {
		logger.Error("ADMIN_PASSWORD_HASH is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Runtime dependencies.
	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	if redisClient == nil {
		logger.Error("redis is required for sessions")
		os.Exit(1)
	}
	defer func() { _ = redisClient.Close() }()

	pool, err := bootstrap.BuildDBPool(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
	}

	// Webhook backend client and appointment cache.
	webhookMetrics := metrics.NewWebhookMetrics(nil)
	refreshMetrics := metrics.NewRefreshMetrics(nil)
	client := webhook.NewClient(cfg.WebhookBaseURL,
		webhook.WithLogger(logger),
		webhook.WithMetrics(webhookMetrics),
		webhook.WithTimeout(cfg.WebhookTimeout),
	)
	cache := appointments.NewCache(client, logger, refreshMetrics)
	refresher := appointments.NewRefresher(cache, cfg.RefreshInterval, logger)
	go refresher.Run(ctx)

	// Sessions and handlers.
	sessions := session.NewService(session.NewRedisStore(redisClient), cfg.SessionSecret, cfg.SessionTTL, cfg.RememberedSessionTTL)
	authHandler := auth.NewHandler(sessions, cfg.AdminEmail, cfg.AdminPasswordHash, cfg.Env != "development", logger)
	appointmentsHandler := appointments.NewHandler(cache, client, logger)
	botHandler := bot.NewHandler(bot.NewService(cache, client, logger), logger)

	var doctorsHandler *doctors.Handler
	var roster catalog.RosterNames
	if pool != nil {
		repo := doctors.NewRepository(pool)
		doctorsHandler = doctors.NewHandler(repo, logger)
		roster = repo
	} else {
		logger.Warn("no database configured, doctor roster disabled")
	}
	catalogHandler := catalog.NewHandler(roster, logger)

	r := router.New(&router.Config{
		Logger:              logger,
		Sessions:            sessions,
		AuthHandler:         authHandler,
		AppointmentsHandler: appointmentsHandler,
		BotHandler:          botHandler,
		DoctorsHandler:      doctorsHandler,
		CatalogHandler:      catalogHandler,
		MetricsHandler:      promhttp.Handler(),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		LoginRateLimit:      cfg.LoginRateLimit,
		LoginRateBurst:      cfg.LoginRateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
