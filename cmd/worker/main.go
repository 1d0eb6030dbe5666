package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/lifebloodops/assistant/internal/cache"
	"github.com/lifebloodops/assistant/internal/config"
	"github.com/lifebloodops/assistant/internal/database"
	"github.com/lifebloodops/assistant/internal/embedding"
	"github.com/lifebloodops/assistant/internal/llm"
	"github.com/lifebloodops/assistant/internal/queue"
	"github.com/lifebloodops/assistant/internal/queue/workers"
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

	// The worker writes to the shared index, so it needs the database; the
	// in-memory store would index into a process nobody queries.
	if cfg.Database.URL == "" {
		slog.Error("worker requires DATABASE_URL")
		os.Exit(1)
	}
	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	store := vectorstore.NewPgVectorStore(db, cfg.RAG.Collection)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	answers := cache.NewAnswerCache(rdb, cfg.RAG.CacheTTL)

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

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
		},
	)

	mux := asynq.NewServeMux()
	ingestWorker := workers.NewIngestWorker(pipeline, answers, cfg.RAG.DocsDir)
	mux.HandleFunc(queue.TypeIngestDirectory, ingestWorker.ProcessTask)

	slog.Info("starting worker", "concurrency", 5)
	if err := srv.Run(mux); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
