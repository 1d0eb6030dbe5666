package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifebloodops/assistant/internal/config"
)

func TestMockClient_Deterministic(t *testing.T) {
	ctx := context.Background()
	c := NewMockClient(nil)

	a, err := c.Generate(ctx, "What are the donor age requirements?")
	require.NoError(t, err)
	b, err := c.Generate(ctx, "What are the donor age requirements?")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}

func TestMockClient_BlankPrompt(t *testing.T) {
	c := NewMockClient(nil)

	got, err := c.Generate(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, "Please provide a specific question or prompt for me to respond to.", got)
}

func TestMockClient_UsesTopicFromPrompt(t *testing.T) {
	c := NewMockClient([]string{"Answer about %TOPIC%."})

	got, err := c.Generate(context.Background(), "donation screening process")
	require.NoError(t, err)
	assert.Contains(t, got, "donation screening process")
}

func TestExtractTopic(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"What is the screening process?", "screening process"},
		{"donor eligibility rules apply", "donor eligibility rules"},
		{"what is the a", "the requested topic"},
		{"", "the requested topic"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, extractTopic(tt.prompt), "prompt %q", tt.prompt)
	}
}

func TestNew_SelectsClientByConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LLMConfig
		wantErr bool
	}{
		{"mock", config.LLMConfig{Provider: "mock"}, false},
		{"gemini with key", config.LLMConfig{Provider: "gemini", GeminiKey: "k"}, false},
		{"gemini without key", config.LLMConfig{Provider: "gemini"}, true},
		{"openai with key", config.LLMConfig{Provider: "openai", OpenAIKey: "k"}, false},
		{"anthropic with key", config.LLMConfig{Provider: "anthropic", AnthropicKey: "k"}, false},
		{"anthropic without key", config.LLMConfig{Provider: "anthropic"}, true},
		{"unknown", config.LLMConfig{Provider: "markov"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}
