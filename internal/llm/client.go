package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/lifebloodops/assistant/internal/config"
)

// ErrProvider indicates an LLM backend failure. The RAG orchestrator absorbs
// it into a fallback answer.
var ErrProvider = errors.New("llm provider error")

// Client turns a prompt into free text. Blank-prompt handling is the
// caller's responsibility.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New selects a client variant from configuration.
func New(cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "mock":
		return NewMockClient(nil), nil
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("gemini llm requires GEMINI_API_KEY or GOOGLE_API_KEY")
		}
		return NewGeminiClient(cfg.GeminiKey, cfg.Model), nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("openai llm requires OPENAI_API_KEY")
		}
		return NewOpenAIClient(cfg.OpenAIKey, cfg.Model), nil
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil, fmt.Errorf("anthropic llm requires ANTHROPIC_API_KEY")
		}
		return NewAnthropicClient(cfg.AnthropicKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
