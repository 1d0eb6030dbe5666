package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lifebloodops/assistant/internal/rag"
	"github.com/lifebloodops/assistant/internal/vectorstore"
)

type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

type SearchResponse struct {
	Results []vectorstore.Hit `json:"results"`
	Count   int               `json:"count"`
}

// SearchHandler exposes raw filtered retrieval, mainly for debugging what
// the index returns for a query.
type SearchHandler struct {
	pipeline *rag.Pipeline
}

func NewSearchHandler(pipeline *rag.Pipeline) *SearchHandler {
	return &SearchHandler{pipeline: pipeline}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query required")
		return
	}

	hits, err := h.pipeline.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		writeError(w, http.StatusBadGateway, "search failed")
		return
	}
	if hits == nil {
		hits = []vectorstore.Hit{}
	}

	writeJSON(w, http.StatusOK, SearchResponse{Results: hits, Count: len(hits)})
}

// StatusHandler reports the pipeline wiring and index size.
type StatusHandler struct {
	pipeline *rag.Pipeline
}

func NewStatusHandler(pipeline *rag.Pipeline) *StatusHandler {
	return &StatusHandler{pipeline: pipeline}
}

func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.pipeline.GetStatus(r.Context()))
}
