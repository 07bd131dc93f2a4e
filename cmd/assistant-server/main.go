package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"foodops-assistant/internal/access"
	"foodops-assistant/internal/api"
	"foodops-assistant/internal/common/config"
	"foodops-assistant/internal/common/database"
	"foodops-assistant/internal/common/logger"
	"foodops-assistant/internal/dispatch"
	"foodops-assistant/internal/session"
	"foodops-assistant/internal/transcript"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting assistant server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init Elasticsearch (optional, transcript audit only) ---
	var transcripts *transcript.Indexer
	if cfg.Database.Elasticsearch.Enabled() {
		esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Fatal("elasticsearch client failed", zap.Error(err))
		}
		if err := esClient.Ping(); err != nil {
			// Transcripts are best effort, so a down cluster only warns.
			zapLog.Warn("elasticsearch not reachable, transcripts may lag", zap.Error(err))
		}
		transcripts = transcript.NewIndexer(
			esClient.Client,
			cfg.Database.Elasticsearch.Index,
			5*time.Second,
			log,
		)
		zapLog.Info("Transcript indexing enabled",
			zap.String("index", cfg.Database.Elasticsearch.Index))
	} else {
		zapLog.Info("Transcript indexing disabled (no elasticsearch addresses)")
	}

	// --- Wire the pipeline ---
	sessions := session.NewStore(
		redisClient.Client,
		time.Duration(cfg.Chatbot.ContextTTLMinutes)*time.Minute,
		log,
	)

	dispatcher := dispatch.NewDispatcher(
		&dispatch.Config{
			QueryTimeout: time.Duration(cfg.Chatbot.QueryTimeout) * time.Millisecond,
		},
		pg.DB,
		access.NewRoleChecker(),
		log,
	)

	handler := api.NewHandler(sessions, dispatcher, transcripts, pg, redisClient, log)
	router := api.NewRouter(handler)

	// --- Ops listener: metrics + pprof, separate from the API port ---
	go func() {
		opsMux := http.NewServeMux()
		opsMux.Handle("/metrics", promhttp.Handler())
		opsMux.Handle("/debug/pprof/", http.DefaultServeMux)

		addr := fmt.Sprintf(":%d", cfg.Server.OpsPort)
		zapLog.Info("Ops listener starting", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, opsMux); err != nil {
			zapLog.Error("ops listener failed", zap.Error(err))
		}
	}()

	// --- API server ---
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Millisecond,
	}

	go func() {
		zapLog.Info("API server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("api server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond,
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}

	zapLog.Info("Assistant server stopped")
}
