package vectorstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/lifebloodops/assistant/pkg/chunker"
)

// ErrValidation indicates a malformed upsert batch. Nothing is written when
// it is returned.
var ErrValidation = errors.New("invalid upsert batch")

// Hit is a single retrieval result. Score is a normalized similarity in
// [0, 1] where 1.0 means identical.
type Hit struct {
	DocID   string  `json:"doc_id"`
	Title   string  `json:"title,omitempty"`
	ChunkID string  `json:"chunk_id"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
	Start   int     `json:"start"`
	End     int     `json:"end"`
}

// Store persists chunk embeddings and serves k-nearest-neighbor queries.
// Upserting an existing chunk ID replaces its record in place. Writing a
// batch whose vector dimension differs from the collection's triggers a
// destructive reset-and-recreate followed by exactly one retry.
type Store interface {
	Upsert(ctx context.Context, chunks []chunker.Chunk, vectors [][]float32) error
	Query(ctx context.Context, vector []float32, topK int) ([]Hit, error)
	Count(ctx context.Context) (int, error)
	Reset(ctx context.Context) error
}

// validateBatch enforces the upsert preconditions shared by all backends:
// equal lengths, non-empty chunk IDs, and a consistent vector dimension
// within the batch.
func validateBatch(chunks []chunker.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks count %d does not match vectors count %d: %w",
			len(chunks), len(vectors), ErrValidation)
	}
	for i, c := range chunks {
		if c.ChunkID == "" {
			return fmt.Errorf("chunk %d missing chunk_id: %w", i, ErrValidation)
		}
	}
	if len(vectors) > 0 {
		dim := len(vectors[0])
		for i, v := range vectors {
			if len(v) != dim {
				return fmt.Errorf("vector %d has dimension %d, batch dimension is %d: %w",
					i, len(v), dim, ErrValidation)
			}
		}
	}
	return nil
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
