package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifebloodops/assistant/internal/vectorstore"
)

func promptHits() []vectorstore.Hit {
	return []vectorstore.Hit{
		{DocID: "donor_guide", Title: "Donor Guide", ChunkID: "donor_guide_chunk_0", Text: "Donors must be between 17 and 65 years old.", Score: 0.9},
		{DocID: "screening", Title: "Screening Process", ChunkID: "screening_chunk_1", Text: "Screening includes a health questionnaire.", Score: 0.7},
	}
}

func TestBuildPromptStructure(t *testing.T) {
	prompt, err := BuildPrompt("What are the age requirements?", promptHits(), ModeGeneral)
	require.NoError(t, err)

	assert.Contains(t, prompt, promptPreamble)
	assert.Contains(t, prompt, "CRITICAL INSTRUCTIONS:")
	assert.Contains(t, prompt, "CITATION REQUIREMENTS:")
	assert.Contains(t, prompt, "SOURCES:")
	assert.Contains(t, prompt, "QUESTION: What are the age requirements?")
	assert.True(t, strings.HasSuffix(prompt, "ANSWER:"))
}

func TestBuildPromptNumbersSources(t *testing.T) {
	prompt, err := BuildPrompt("How does screening work?", promptHits(), ModeGeneral)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Source [1] - Donor Guide (Document: donor_guide):")
	assert.Contains(t, prompt, "Source [2] - Screening Process (Document: screening):")
	assert.Contains(t, prompt, "Donors must be between 17 and 65 years old.")
	assert.Contains(t, prompt, "Screening includes a health questionnaire.")
}

func TestBuildPromptModes(t *testing.T) {
	cases := []struct {
		mode string
		want string
	}{
		{ModeGeneral, "concise, direct answer"},
		{ModeChecklist, "step-by-step checklist"},
		{ModePlainEnglish, "simplified explanation"},
	}

	for _, tc := range cases {
		t.Run(tc.mode, func(t *testing.T) {
			prompt, err := BuildPrompt("How do I donate?", promptHits(), tc.mode)
			require.NoError(t, err)
			assert.Contains(t, prompt, tc.want)
		})
	}
}

func TestBuildPromptUnknownModeFallsBackToGeneral(t *testing.T) {
	prompt, err := BuildPrompt("How do I donate?", promptHits(), "haiku")
	require.NoError(t, err)
	assert.Contains(t, prompt, modeTemplates[ModeGeneral])
}

func TestBuildPromptModeCaseInsensitive(t *testing.T) {
	prompt, err := BuildPrompt("How do I donate?", promptHits(), "  CHECKLIST ")
	require.NoError(t, err)
	assert.Contains(t, prompt, modeTemplates[ModeChecklist])
}

func TestBuildPromptEmptyQuestion(t *testing.T) {
	_, err := BuildPrompt("   ", promptHits(), ModeGeneral)
	assert.Error(t, err)
}

func TestBuildPromptBlankHitsFallToNoSources(t *testing.T) {
	hits := []vectorstore.Hit{{DocID: "a", Text: "   ", Score: 0.9}}
	prompt, err := BuildPrompt("Anything?", hits, ModeGeneral)
	require.NoError(t, err)

	assert.Contains(t, prompt, "No relevant sources found for this question.")
	assert.Contains(t, prompt, noSourcesAnswer)
}

func TestBuildPromptNoSourcesShape(t *testing.T) {
	prompt := BuildPromptNoSources("What is the meaning of life?", ModeGeneral)

	assert.Contains(t, prompt, promptPreamble)
	assert.Contains(t, prompt, "No relevant sources found for this question.")
	assert.Contains(t, prompt, "QUESTION: What is the meaning of life?")
	assert.True(t, strings.HasSuffix(prompt, noSourcesAnswer))
}
