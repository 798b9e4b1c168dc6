package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/memberwise/memberful-go/internal/config"
	xredis "github.com/memberwise/memberful-go/internal/redis"
	"github.com/memberwise/memberful-go/internal/server/handler"
	"github.com/memberwise/memberful-go/internal/service/ingest"
	"github.com/memberwise/memberful-go/internal/storage"
	"github.com/memberwise/memberful-go/internal/xhttp/middleware"
	"github.com/memberwise/memberful-go/internal/xslog"
	"github.com/memberwise/memberful-go/webhooks"
)

const keyPort = "port"

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stdout)
	slog.SetDefault(logger)

	ctx := context.Background()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", xslog.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Read()
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	events, err := initEventStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event store: %w", err)
	}

	mux := webhooks.NewMux()

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize postgres: %w", err)
		}
		defer pool.Close()

		members, err := storage.NewMemberStore(ctx, pool)
		if err != nil {
			return fmt.Errorf("failed to initialize member store: %w", err)
		}
		ingest.RegisterMemberMirror(mux, members)
		logger.InfoContext(ctx, "member mirroring enabled")
	}

	ingestService := ingest.NewProcessor(cfg.WebhookSecret, events, mux)

	webhookHandler := handler.NewWebhook(ingestService)
	eventsHandler := handler.NewEvents(events)

	httpMux := http.NewServeMux()
	httpMux.HandleFunc("POST /webhooks/memberful", webhookHandler.HandleWebhook)
	httpMux.HandleFunc("GET /events", eventsHandler.HandleRecent)
	httpMux.HandleFunc("GET /health", handler.HandleHealth)

	wrapped := middleware.Chain(httpMux,
		middleware.Recovery,
		middleware.Logging,
		middleware.Logger(logger),
		middleware.RequestID(),
	)

	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           wrapped,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.InfoContext(ctx, "starting server",
			xslog.Version(),
			slog.Int(keyPort, cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "server error", xslog.Error(err))
		}
	}()

	<-done
	logger.InfoContext(ctx, "shutdown signal received, initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	logger.InfoContext(ctx, "server stopped")
	return nil
}

func initEventStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage.EventStore, error) {
	if cfg.RedisURL == "" {
		logger.InfoContext(ctx, "using in-memory event store")
		return storage.NewMemoryEventStore(), nil
	}

	logger.InfoContext(ctx, "using redis event store")
	client, err := xredis.New(ctx, xredis.Config{URL: cfg.RedisURL})
	if err != nil {
		return nil, err
	}
	return storage.NewRedisEventStore(client), nil
}
