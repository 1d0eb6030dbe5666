package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/lifebloodops/assistant/internal/api"
	"github.com/lifebloodops/assistant/internal/cache"
	"github.com/lifebloodops/assistant/internal/config"
	"github.com/lifebloodops/assistant/internal/database"
	"github.com/lifebloodops/assistant/internal/embedding"
	"github.com/lifebloodops/assistant/internal/llm"
	"github.com/lifebloodops/assistant/internal/queue"
	"github.com/lifebloodops/assistant/internal/rag"
	"github.com/lifebloodops/assistant/internal/vectorstore"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Vector store: pgvector when a database is configured, otherwise the
	// in-memory index for local runs.
	var db *pgxpool.Pool
	var store vectorstore.Store
	if cfg.Database.URL != "" {
		db, err = database.NewPool(ctx, cfg.Database)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store = vectorstore.NewPgVectorStore(db, cfg.RAG.Collection)
	} else {
		slog.Warn("DATABASE_URL not set, using in-memory vector store")
		store = vectorstore.NewMemoryStore()
	}

	// Redis is optional: without it there is no answer cache and no async
	// ingestion, but the API still serves.
	var rdb *redis.Client
	var answers *cache.AnswerCache
	var queueClient *queue.Client
	r := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := r.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unavailable, running without cache and queue", "error", err)
		r.Close()
	} else {
		rdb = r
		defer rdb.Close()
		answers = cache.NewAnswerCache(rdb, cfg.RAG.CacheTTL)
		queueClient = queue.NewClient(cfg.Redis)
		defer queueClient.Close()
	}

	embedder, err := embedding.New(cfg.Embedding)
	if err != nil {
		slog.Error("embedding provider init failed", "error", err)
		os.Exit(1)
	}

	generator, err := llm.New(cfg.LLM)
	if err != nil {
		slog.Error("llm client init failed", "error", err)
		os.Exit(1)
	}

	pipeline := rag.NewPipeline(store, embedder, generator, rag.OptionsFromConfig(cfg.RAG))

	handler := api.NewRouter(api.Deps{
		Pipeline: pipeline,
		Answers:  answers,
		Queue:    queueClient,
		DB:       db,
		Redis:    rdb,
		Config:   cfg,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting API server", "addr", cfg.Addr(),
			"embedding", cfg.Embedding.Provider, "llm", cfg.LLM.Provider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}
