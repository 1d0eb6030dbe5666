package rag

import (
	"strings"

	"github.com/lifebloodops/assistant/internal/vectorstore"
)

// DefaultSnippetMaxLen caps citation snippet length.
const DefaultSnippetMaxLen = 200

// Citation points from a generated answer back to the source chunk that
// supports it.
type Citation struct {
	DocID   string  `json:"doc_id"`
	Title   string  `json:"title,omitempty"`
	ChunkID string  `json:"chunk_id,omitempty"`
	Snippet string  `json:"snippet"`
	Score   float64 `json:"score"`
}

func buildCitations(hits []vectorstore.Hit, snippetMaxLen int) []Citation {
	citations := make([]Citation, len(hits))
	for i, h := range hits {
		citations[i] = Citation{
			DocID:   h.DocID,
			Title:   h.Title,
			ChunkID: h.ChunkID,
			Snippet: Snippet(h.Text, snippetMaxLen),
			Score:   h.Score,
		}
	}
	return citations
}

// Snippet truncates text to at most maxLen characters, preferring a cut at
// the last sentence-ending period in the window, then the last word
// boundary, as long as the cut lands past 0.7*maxLen (avoids over-short
// snippets). Word-boundary and hard cuts get a trailing ellipsis.
func Snippet(text string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSnippetMaxLen
	}

	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cutoff := 0.7 * float64(maxLen)

	if period := lastIndexRune(runes[:maxLen], '.'); float64(period) > cutoff {
		return string(runes[:period+1])
	}

	// Search within maxLen-3 so the ellipsis never pushes past maxLen.
	if space := lastIndexRune(runes[:maxLen-3], ' '); float64(space) > cutoff {
		return string(runes[:space]) + "..."
	}

	return string(runes[:maxLen-3]) + "..."
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}
