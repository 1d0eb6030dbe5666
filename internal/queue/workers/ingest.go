// Package workers holds the asynq task handlers run by the worker process.
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/lifebloodops/assistant/internal/cache"
	"github.com/lifebloodops/assistant/internal/loader"
	"github.com/lifebloodops/assistant/internal/queue"
	"github.com/lifebloodops/assistant/internal/rag"
)

// IngestWorker runs directory ingestion tasks through the pipeline and
// invalidates cached answers afterwards.
type IngestWorker struct {
	pipeline *rag.Pipeline
	answers  *cache.AnswerCache
	docsDir  string
}

func NewIngestWorker(pipeline *rag.Pipeline, answers *cache.AnswerCache, docsDir string) *IngestWorker {
	return &IngestWorker{pipeline: pipeline, answers: answers, docsDir: docsDir}
}

func (w *IngestWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.IngestDirectoryPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	dir := payload.Dir
	if dir == "" {
		dir = w.docsDir
	}

	slog.Info("ingesting directory", "dir", dir)

	docs, err := loader.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	if len(docs) == 0 {
		slog.Warn("no documents found to ingest", "dir", dir)
		return nil
	}

	stats, err := w.pipeline.Ingest(ctx, docs)
	if err != nil {
		return fmt.Errorf("ingest documents: %w", err)
	}

	if err := w.answers.Flush(ctx); err != nil {
		slog.Warn("could not flush answer cache after ingest", "error", err)
	}

	slog.Info("directory ingested", "dir", dir,
		"indexed_docs", stats.IndexedDocs, "indexed_chunks", stats.IndexedChunks)
	return nil
}
