package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/newsdesk/news-api/internal/api"
	"github.com/newsdesk/news-api/internal/cache"
	"github.com/newsdesk/news-api/internal/config"
	"github.com/newsdesk/news-api/internal/db"
	"github.com/newsdesk/news-api/internal/metrics"
	"github.com/newsdesk/news-api/internal/notifier"
	"github.com/newsdesk/news-api/internal/queue"
	"github.com/newsdesk/news-api/internal/repository"
	"github.com/newsdesk/news-api/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	// ---- configuration ----
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// ---- database ----
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("database migrations applied")

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	onHit, onMiss := m.CacheHooks()
	pageCache := cache.New(cfg.CacheMaxEntries, cfg.CacheTTL, cache.Hooks{
		OnHit:  onHit,
		OnMiss: onMiss,
	})

	var sender notifier.Notifier
	if cfg.WebhookURL != "" {
		sender = notifier.NewWebhookNotifier(cfg.WebhookURL, cfg.WebhookTimeout)
		logger.Info("using webhook notifier", zap.String("url", cfg.WebhookURL))
	} else {
		sender = notifier.NewLogNotifier(logger)
		logger.Info("no webhook URL configured, notifications are logged")
	}

	onCompleted, onFailed := m.QueueHooks()
	q := queue.New(sender, cfg.JobInterval, logger, queue.Hooks{
		OnCompleted: onCompleted,
		OnFailed:    onFailed,
	})
	metrics.RegisterQueueDepth(reg, func() int { return q.Status().Pending })

	repo := repository.NewPgNewsRepository(pool)
	svc := service.NewNewsService(repo, pageCache, q, logger, service.Hooks{
		OnCreated: m.ServiceHooks(),
	})

	// ---- HTTP server ----
	router := api.NewRouter(svc, q, reg, logger)
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start server in a goroutine so it does not block the shutdown listener.
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")

	// 1. Stop accepting new HTTP requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	// 2. Stop the queue worker and wait for an in-flight delivery to finish.
	//    Jobs still pending are dropped; the queue is not durable.
	q.Close()

	logger.Info("server stopped cleanly")
}
