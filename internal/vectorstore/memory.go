package vectorstore

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/lifebloodops/assistant/pkg/chunker"
)

type record struct {
	chunk  chunker.Chunk
	vector []float32
}

// MemoryStore is a brute-force in-memory Store keyed by chunk ID. It is used
// by tests and for running the service without a database.
type MemoryStore struct {
	mu        sync.RWMutex
	dimension int
	records   map[string]record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]record)}
}

func (s *MemoryStore) Upsert(ctx context.Context, chunks []chunker.Chunk, vectors [][]float32) error {
	if err := validateBatch(chunks, vectors); err != nil {
		return err
	}
	if len(chunks) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dim := len(vectors[0])
	if s.dimension != 0 && s.dimension != dim {
		slog.Warn("embedding dimension changed, resetting in-memory collection",
			"have", s.dimension,
			"want", dim,
		)
		s.records = make(map[string]record)
	}
	s.dimension = dim

	for i, c := range chunks {
		s.records[c.ChunkID] = record{chunk: c, vector: vectors[i]}
	}
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, vector []float32, topK int) ([]Hit, error) {
	if len(vector) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil, nil
	}
	if topK <= 0 {
		topK = 5
	}

	hits := make([]Hit, 0, len(s.records))
	for _, r := range s.records {
		hits = append(hits, Hit{
			DocID:   r.chunk.DocID,
			Title:   r.chunk.Title,
			ChunkID: r.chunk.ChunkID,
			Text:    r.chunk.Text,
			Score:   clampScore(cosine(vector, r.vector)),
			Start:   r.chunk.Start,
			End:     r.chunk.End,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]record)
	s.dimension = 0
	return nil
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
