package rag

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lifebloodops/assistant/internal/vectorstore"
)

// Mode controls the answer formatting instruction included in the prompt.
const (
	ModeGeneral      = "general"
	ModeChecklist    = "checklist"
	ModePlainEnglish = "plain_english"
)

const promptPreamble = "You are a knowledgeable assistant answering questions about medical operations and procedures."

const coreRules = `CRITICAL INSTRUCTIONS:
- Answer ONLY using the provided sources below
- If the sources don't contain the answer to the question, clearly say "I don't know" or "The provided sources don't contain information about this topic"
- Do not use external knowledge or make assumptions beyond what's explicitly stated in the sources
- Always cite your sources using the format [1], [2], etc. when referencing information from the sources
- If multiple sources support the same point, cite all relevant sources like [1,2]`

const citationInstructions = `CITATION REQUIREMENTS:
- When referencing information from sources, immediately cite the source number in square brackets [1], [2], etc.
- If information comes from multiple sources, cite all relevant sources [1,2,3]
- Place citations right after the relevant statement, not at the end of paragraphs
- Every factual claim must have a citation unless it's a direct restatement of the question

EXAMPLE:
"Blood donors must be between 17-65 years old [1] and weigh at least 110 pounds [1,2]. The screening process includes a health questionnaire [3]."`

var modeTemplates = map[string]string{
	ModeGeneral: `Provide a concise, direct answer to the question based on the sources. Use clear, professional language and cite your sources appropriately.`,

	ModeChecklist: `Provide your answer as a clear, step-by-step checklist or numbered list. Break down the information into actionable steps or organized points. Each step should be cited with the appropriate sources.

Format your response as:
1. [Step/Point 1] [citation]
2. [Step/Point 2] [citation]
3. [Continue as needed...]`,

	ModePlainEnglish: `Provide a simplified explanation that would be easy for anyone to understand. Use simple language, avoid technical jargon, and explain concepts clearly. Break down complex information into digestible parts.`,
}

// BuildPrompt renders the grounding prompt: role preamble, grounding rules,
// citation instructions, the mode's formatting instruction, a numbered
// SOURCES block, the question, and an ANSWER: marker. When no hits are
// provided it falls back to the no-sources prompt shape.
func BuildPrompt(question string, hits []vectorstore.Hit, mode string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("question cannot be empty")
	}

	valid := make([]vectorstore.Hit, 0, len(hits))
	for _, h := range hits {
		if strings.TrimSpace(h.Text) != "" {
			valid = append(valid, h)
		}
	}
	if len(valid) == 0 {
		return BuildPromptNoSources(question, mode), nil
	}

	sections := []string{
		promptPreamble,
		"",
		coreRules,
		"",
		citationInstructions,
		"",
		modeInstructions(mode),
		"",
		formatSources(valid),
		"",
		fmt.Sprintf("QUESTION: %s", strings.TrimSpace(question)),
		"",
		"ANSWER:",
	}

	return strings.Join(sections, "\n"), nil
}

// BuildPromptNoSources produces the structurally simpler prompt used when
// retrieval found nothing usable. The pipeline answers this case directly
// without calling the LLM; the prompt exists so the no-sources shape stays
// consistent and testable.
func BuildPromptNoSources(question, mode string) string {
	sections := []string{
		promptPreamble,
		"",
		coreRules,
		"",
		"SOURCES:",
		"No relevant sources found for this question.",
		"",
		fmt.Sprintf("QUESTION: %s", strings.TrimSpace(question)),
		"",
		"ANSWER:",
		noSourcesAnswer,
	}
	return strings.Join(sections, "\n")
}

// modeInstructions returns the formatting instruction for the mode, falling
// back to general for unrecognized values. Bad mode input never errors.
func modeInstructions(mode string) string {
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if tmpl, ok := modeTemplates[normalized]; ok {
		return tmpl
	}
	slog.Warn("unknown response mode, using general", "mode", mode)
	return modeTemplates[ModeGeneral]
}

// formatSources renders the numbered SOURCES block, one entry per hit,
// 1-indexed in input order.
func formatSources(hits []vectorstore.Hit) string {
	if len(hits) == 0 {
		return "No sources provided."
	}

	var sb strings.Builder
	sb.WriteString("SOURCES:\n")

	for i, h := range hits {
		header := fmt.Sprintf("Source [%d]", i+1)
		if h.Title != "" {
			header += fmt.Sprintf(" - %s", h.Title)
		}
		if h.DocID != "" {
			header += fmt.Sprintf(" (Document: %s)", h.DocID)
		}
		fmt.Fprintf(&sb, "\n%s:\n%s\n", header, strings.TrimSpace(h.Text))
	}

	return sb.String()
}
