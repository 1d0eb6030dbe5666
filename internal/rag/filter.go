package rag

import (
	"strings"

	"github.com/lifebloodops/assistant/internal/vectorstore"
)

const (
	// DefaultMinScore is the similarity threshold below which a hit is
	// considered noise rather than a match.
	DefaultMinScore = 0.01

	// DefaultMinTextLength drops fragments too short to support an answer.
	DefaultMinTextLength = 20
)

// Filter removes hits with blank text, text shorter than minTextLen, or a
// score below minScore. Surviving hits keep their input order, which is
// already score-descending from the index. This gate is what separates
// "answer with citations" from "admit no relevant information".
func Filter(hits []vectorstore.Hit, minScore float64, minTextLen int) []vectorstore.Hit {
	if len(hits) == 0 {
		return nil
	}

	kept := make([]vectorstore.Hit, 0, len(hits))
	for _, h := range hits {
		text := strings.TrimSpace(h.Text)
		if text == "" {
			continue
		}
		if len(text) < minTextLen {
			continue
		}
		if h.Score < minScore {
			continue
		}
		kept = append(kept, h)
	}
	return kept
}
