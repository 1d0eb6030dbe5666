package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifebloodops/assistant/pkg/chunker"
)

func testChunk(id, text string) chunker.Chunk {
	return chunker.Chunk{
		DocID:   "doc",
		ChunkID: id,
		Text:    text,
		End:     len(text),
	}
}

func TestMemoryStore_UpsertAndQuery(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.Upsert(ctx,
		[]chunker.Chunk{testChunk("doc_chunk_0", "donor eligibility rules"), testChunk("doc_chunk_1", "cake baking tips")},
		[][]float32{{1, 0, 0}, {0, 1, 0}},
	)
	require.NoError(t, err)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	hits, err := s.Query(ctx, []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "doc_chunk_0", hits[0].ChunkID)
	assert.Equal(t, "donor eligibility rules", hits[0].Text)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestMemoryStore_ReUpsertReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Upsert(ctx,
		[]chunker.Chunk{testChunk("doc_chunk_0", "original content")},
		[][]float32{{1, 0}},
	))
	require.NoError(t, s.Upsert(ctx,
		[]chunker.Chunk{testChunk("doc_chunk_0", "updated content")},
		[][]float32{{0, 1}},
	))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "re-upsert must not grow the index")

	hits, err := s.Query(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "updated content", hits[0].Text)
}

func TestMemoryStore_UpsertValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("mismatched lengths", func(t *testing.T) {
		s := NewMemoryStore()
		err := s.Upsert(ctx, []chunker.Chunk{testChunk("a", "x"), testChunk("b", "y")}, [][]float32{{1}})
		require.ErrorIs(t, err, ErrValidation)

		count, _ := s.Count(ctx)
		assert.Zero(t, count, "nothing may be written on validation failure")
	})

	t.Run("missing chunk id", func(t *testing.T) {
		s := NewMemoryStore()
		err := s.Upsert(ctx, []chunker.Chunk{{DocID: "doc", Text: "x"}}, [][]float32{{1}})
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("inconsistent vector dimensions in batch", func(t *testing.T) {
		s := NewMemoryStore()
		err := s.Upsert(ctx,
			[]chunker.Chunk{testChunk("a", "x"), testChunk("b", "y")},
			[][]float32{{1, 0}, {1}},
		)
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestMemoryStore_DimensionMismatchResetsCollection(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Upsert(ctx, []chunker.Chunk{testChunk("a", "first")}, [][]float32{{1, 0, 0}}))

	// Writing a different dimension drops everything previously indexed and
	// then succeeds.
	require.NoError(t, s.Upsert(ctx, []chunker.Chunk{testChunk("b", "second")}, [][]float32{{1, 0}}))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	hits, err := s.Query(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "b", hits[0].ChunkID)
}

func TestMemoryStore_ScoreBounds(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Upsert(ctx,
		[]chunker.Chunk{testChunk("a", "aligned"), testChunk("b", "opposed")},
		[][]float32{{1, 0}, {-1, 0}},
	))

	hits, err := s.Query(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.GreaterOrEqual(t, h.Score, 0.0)
		assert.LessOrEqual(t, h.Score, 1.0)
	}
}

func TestMemoryStore_EmptyQueries(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("empty index", func(t *testing.T) {
		hits, err := s.Query(ctx, []float32{1, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("empty vector", func(t *testing.T) {
		require.NoError(t, s.Upsert(ctx, []chunker.Chunk{testChunk("a", "x")}, [][]float32{{1, 0}}))
		hits, err := s.Query(ctx, nil, 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
	})

	t.Run("after reset", func(t *testing.T) {
		require.NoError(t, s.Reset(ctx))
		hits, err := s.Query(ctx, []float32{1, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, hits)

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestMemoryStore_TopKLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	chunks := make([]chunker.Chunk, 10)
	vectors := make([][]float32, 10)
	for i := range chunks {
		chunks[i] = testChunk(string(rune('a'+i)), "content")
		vectors[i] = []float32{1, float32(i) / 10}
	}
	require.NoError(t, s.Upsert(ctx, chunks, vectors))

	hits, err := s.Query(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Len(t, hits, 3)

	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Score, hits[i].Score, "hits must be score-descending")
	}
}
