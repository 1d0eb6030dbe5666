package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/lifebloodops/assistant/internal/cache"
	"github.com/lifebloodops/assistant/internal/loader"
	"github.com/lifebloodops/assistant/internal/queue"
	"github.com/lifebloodops/assistant/internal/rag"
)

type IngestRequest struct {
	Dir   string `json:"dir,omitempty"`
	Async bool   `json:"async,omitempty"`
}

type IngestResponse struct {
	IndexedDocs   int    `json:"indexed_docs"`
	IndexedChunks int    `json:"indexed_chunks"`
	TraceID       string `json:"trace_id"`
}

// IngestHandler reindexes the docs directory, either inline or by handing
// the work to the queue worker.
type IngestHandler struct {
	pipeline *rag.Pipeline
	answers  *cache.AnswerCache
	queue    *queue.Client
	docsDir  string
}

// NewIngestHandler accepts a nil queue client; async requests then fall
// back to inline ingestion.
func NewIngestHandler(pipeline *rag.Pipeline, answers *cache.AnswerCache, qc *queue.Client, docsDir string) *IngestHandler {
	return &IngestHandler{pipeline: pipeline, answers: answers, queue: qc, docsDir: docsDir}
}

func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	dir := req.Dir
	if dir == "" {
		dir = h.docsDir
	}
	traceID := uuid.NewString()

	if req.Async && h.queue != nil {
		if err := h.queue.EnqueueIngestDirectory(queue.IngestDirectoryPayload{Dir: dir}); err != nil {
			slog.Error("enqueue ingestion failed", "error", err)
			writeError(w, http.StatusInternalServerError, "could not queue ingestion")
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued", "trace_id": traceID})
		return
	}

	docs, err := loader.LoadDir(dir)
	if err != nil {
		slog.Error("document load failed", "dir", dir, "error", err)
		writeError(w, http.StatusInternalServerError, "could not load documents")
		return
	}

	stats, err := h.pipeline.Ingest(r.Context(), docs)
	if err != nil {
		slog.Error("ingestion failed", "dir", dir, "error", err)
		writeError(w, http.StatusInternalServerError, "ingestion failed")
		return
	}

	if err := h.answers.Flush(r.Context()); err != nil {
		slog.Warn("could not flush answer cache after ingest", "error", err)
	}

	writeJSON(w, http.StatusOK, IngestResponse{
		IndexedDocs:   stats.IndexedDocs,
		IndexedChunks: stats.IndexedChunks,
		TraceID:       traceID,
	})
}
