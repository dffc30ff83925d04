package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	kafkaadapter "github.com/aurorahq/akfeed/internal/adapter/kafka"
	"github.com/aurorahq/akfeed/internal/adapter/xai"
	"github.com/aurorahq/akfeed/internal/api"
	"github.com/aurorahq/akfeed/internal/auth"
	"github.com/aurorahq/akfeed/internal/config"
	"github.com/aurorahq/akfeed/internal/observability"
	"github.com/aurorahq/akfeed/internal/refdata"
	"github.com/aurorahq/akfeed/internal/service"
	"github.com/aurorahq/akfeed/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	data, err := refdata.Load()
	if err != nil {
		logger.Error("failed to load reference data", "error", err)
		os.Exit(1)
	}

	db, err := openDatabase(cfg, logger)
	if err != nil {
		logger.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := store.RunMigrations(db); err != nil {
		logger.Error("migrations failed", "error", err)
		os.Exit(1)
	}
	pg := store.NewPgStore(db, metrics)

	// Redis front page cache (feature-flagged via REDIS_ADDR).
	var cache service.PageCache
	if cfg.RedisAddr != "" {
		rc := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rc.Close()
		cache = rc
		logger.Info("front page cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.FrontPageTTL)
	} else {
		logger.Info("front page cache disabled")
	}

	// Publish event stream (feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS).
	var publisher service.EventPublisher
	if cfg.KafkaEnabled {
		kp := kafkaadapter.NewPublisher(cfg, logger)
		defer func() {
			if err := kp.Close(); err != nil {
				logger.Error("kafka publisher close error", "error", err)
			}
		}()
		publisher = kp
		logger.Info("publish events enabled", "topic", cfg.KafkaPublishTopic)
	} else {
		logger.Info("publish events disabled")
	}

	// Summary drafting (feature-flagged via XAI_API_KEY).
	var summarizer service.Summarizer
	if cfg.XAIAPIKey != "" {
		summarizer = xai.NewClient(cfg.XAIAPIKey, "", nil)
		logger.Info("summary drafting enabled")
	} else {
		logger.Info("summary drafting disabled")
	}

	svc := service.New(service.Deps{
		Store:      pg,
		Users:      pg,
		Data:       data,
		Cache:      cache,
		CacheTTL:   cfg.FrontPageTTL,
		Publisher:  publisher,
		Summarizer: summarizer,
		Logger:     logger,
		Metrics:    metrics,
	})

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	handler := api.NewHandler(svc, issuer, logger)
	router := api.NewRouter(cfg, handler, issuer, pg)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

// openDatabase connects to Postgres, retrying while the database starts up.
func openDatabase(cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DatabaseURL())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	var pingErr error
	for attempt := 1; attempt <= 5; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		pingErr = db.PingContext(ctx)
		cancel()
		if pingErr == nil {
			return db, nil
		}
		logger.Warn("database ping failed, retrying", "attempt", attempt, "error", pingErr)
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	db.Close()
	return nil, pingErr
}
