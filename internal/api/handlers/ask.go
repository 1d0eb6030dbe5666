package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lifebloodops/assistant/internal/cache"
	"github.com/lifebloodops/assistant/internal/rag"
)

// AskRequest is the question payload. Mode selects the answer format and
// TopK caps retrieval; both are optional.
type AskRequest struct {
	Question string `json:"question"`
	Mode     string `json:"mode,omitempty"`
	TopK     int    `json:"top_k,omitempty"`
}

// AskResponse always carries a displayable answer. Citations are empty when
// the answer is a fallback.
type AskResponse struct {
	Answer    string         `json:"answer"`
	Citations []rag.Citation `json:"citations"`
	TraceID   string         `json:"trace_id"`
	Cached    bool           `json:"cached,omitempty"`
}

// AskHandler serves grounded question answering, with a redis answer cache
// in front of the pipeline.
type AskHandler struct {
	pipeline *rag.Pipeline
	answers  *cache.AnswerCache
}

func NewAskHandler(pipeline *rag.Pipeline, answers *cache.AnswerCache) *AskHandler {
	return &AskHandler{pipeline: pipeline, answers: answers}
}

func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question required")
		return
	}

	traceID := uuid.NewString()
	if req.Mode == "" {
		req.Mode = rag.ModeGeneral
	}

	if res, ok := h.answers.Get(r.Context(), req.Question, req.Mode, req.TopK); ok {
		writeJSON(w, http.StatusOK, AskResponse{
			Answer:    res.Answer,
			Citations: res.Citations,
			TraceID:   traceID,
			Cached:    true,
		})
		return
	}

	res := h.pipeline.Ask(r.Context(), req.Question, req.Mode, req.TopK)

	// A cache write failure never fails the request.
	if err := h.answers.Set(r.Context(), req.Question, req.Mode, req.TopK, res); err != nil {
		slog.Warn("answer cache write failed", "error", err)
	}

	writeJSON(w, http.StatusOK, AskResponse{
		Answer:    res.Answer,
		Citations: res.Citations,
		TraceID:   traceID,
	})
}
