package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/lifebloodops/assistant/internal/config"
)

// ErrProvider indicates an embedding backend failure. Callers on the query
// path absorb it into a fallback answer; callers on the ingestion path
// propagate it.
var ErrProvider = errors.New("embedding provider error")

// Provider turns text into fixed-dimension vectors. EmbedTexts must return
// an empty slice for empty input without invoking the backend.
type Provider interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// New selects a provider variant from configuration.
func New(cfg config.EmbeddingConfig) (Provider, error) {
	switch cfg.Provider {
	case "fake":
		return NewFakeProvider(cfg.Dimension), nil
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("gemini embeddings require GEMINI_API_KEY or GOOGLE_API_KEY")
		}
		return NewGeminiProvider(cfg.GeminiKey, cfg.Model), nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("openai embeddings require OPENAI_API_KEY")
		}
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
