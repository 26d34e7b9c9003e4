package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"wellness_checkin/internal/ai"
	"wellness_checkin/internal/config"
	"wellness_checkin/internal/handlers"
	"wellness_checkin/internal/observability"
	"wellness_checkin/internal/server"
	"wellness_checkin/internal/storage"
	"wellness_checkin/internal/usecases"
)

func main() {
	cfg := config.New()

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.IsDevelopment())
	if err != nil {
		log.Fatal("unable to build logger: ", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("wellness_checkin stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	shutdownTracing, err := observability.InitTracing(ctx, observability.TracerName, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	tracer := otel.Tracer(observability.TracerName)
	collector := observability.NewCollector("wellness")

	journal, err := openJournal(ctx, cfg)
	if err != nil {
		return err
	}
	store := storage.NewTracedJournalStore(journal, tracer, collector)
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		return fmt.Errorf("unable to init journal: %w", err)
	}
	logger.Info("journal ready", zap.String("driver", cfg.StorageDriver))

	gen, err := ai.New(ctx, ai.Options{
		Provider: cfg.AIProvider,
		Vertex: ai.VertexConfig{
			Project:          cfg.VertexProject,
			Location:         cfg.VertexLocation,
			Model:            cfg.VertexModel,
			CredentialsFile:  cfg.CredentialsFile,
			ResponseMIMEType: "application/json",
		},
		ChatURL:    cfg.ChatAPIURL,
		ChatAPIKey: cfg.ChatAPIKey,
		ChatModel:  cfg.ChatModel,
		HTTPClient: &http.Client{Timeout: cfg.AITimeout},
	})
	if err != nil {
		logger.Warn("AI not initialized, check-ins will use fallback replies",
			zap.String("provider", cfg.AIProvider),
			zap.Error(err),
		)
		gen = ai.Unavailable{Cause: err}
	}

	analyzer := usecases.NewMoodAnalyzer(gen, usecases.AnalyzerOptions{
		MaxTokens: cfg.MaxOutputTokens,
		Timeout:   cfg.AITimeout,
		Logger:    logger.Named("analyzer"),
		Tracer:    tracer,
		Metrics:   collector,
	})
	service := usecases.NewCheckinService(analyzer, store)
	checkinHandler := handlers.NewCheckinHandler(service, logger, cfg.HistoryLimit)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewRouter(checkinHandler, collector, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen and serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}

func openJournal(ctx context.Context, cfg *config.Config) (storage.JournalStore, error) {
	switch cfg.StorageDriver {
	case config.DriverSQLite:
		return storage.OpenSQLite(cfg.SQLitePath)
	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("unable to connect to db: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("unable to ping db: %w", err)
		}
		return storage.NewPostgresJournalStorage(pool), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
