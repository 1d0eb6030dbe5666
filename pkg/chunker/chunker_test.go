package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk_SingleChunkWhenTextFits(t *testing.T) {
	doc := Document{
		DocID: "donor-eligibility",
		Title: "Donor Eligibility",
		Text:  "Blood donors must be between 17-65 years old and weigh at least 110 pounds.",
	}

	chunks, err := ChunkDocument(doc, Options{ChunkSize: 2000, Overlap: 200})
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	c := chunks[0]
	assert.Equal(t, "donor-eligibility", c.DocID)
	assert.Equal(t, "donor-eligibility_chunk_0", c.ChunkID)
	assert.Equal(t, 0, c.Start)
	assert.Equal(t, len([]rune(doc.Text)), c.End)
	assert.Equal(t, doc.Text, c.Text)
	assert.Equal(t, "Donor Eligibility", c.Title)
}

func TestChunk_BlankTextYieldsNoChunks(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t\n"} {
		chunks, err := ChunkDocument(Document{DocID: "d", Text: text}, DefaultOptions())
		require.NoError(t, err)
		assert.Empty(t, chunks)
	}
}

func TestChunk_RejectsBadConfig(t *testing.T) {
	doc := Document{DocID: "d", Text: "some text"}

	tests := []struct {
		name string
		opts Options
	}{
		{"overlap equals size", Options{ChunkSize: 100, Overlap: 100}},
		{"overlap exceeds size", Options{ChunkSize: 100, Overlap: 150}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ChunkDocument(doc, tt.opts)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadConfig)
		})
	}
}

func TestChunk_WindowsCoverFullText(t *testing.T) {
	text := strings.Repeat("abcdefghij", 100) // 1000 chars, no trimmable whitespace
	doc := Document{DocID: "d", Text: text}

	chunks, err := ChunkDocument(doc, Options{ChunkSize: 300, Overlap: 50})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, len(text), chunks[len(chunks)-1].End)

	// No gap between consecutive windows.
	for i := 1; i < len(chunks); i++ {
		assert.LessOrEqual(t, chunks[i].Start, chunks[i-1].End,
			"gap between chunk %d and %d", i-1, i)
	}

	for _, c := range chunks {
		assert.NotEmpty(t, strings.TrimSpace(c.Text))
	}
}

func TestChunk_OverlapBound(t *testing.T) {
	text := strings.Repeat("x", 950)
	doc := Document{DocID: "d", Text: text}

	opts := Options{ChunkSize: 300, Overlap: 60}
	chunks, err := ChunkDocument(doc, opts)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i := 1; i < len(chunks); i++ {
		ov := Overlap(chunks[i-1], chunks[i])
		assert.GreaterOrEqual(t, ov, 0)
		assert.LessOrEqual(t, ov, opts.Overlap)
	}
}

func TestChunk_IndicesStayContiguous(t *testing.T) {
	// A long run of whitespace in the middle produces windows that trim to
	// nothing; those must be dropped without consuming an index.
	text := strings.Repeat("a", 200) + strings.Repeat(" ", 400) + strings.Repeat("b", 200)
	doc := Document{DocID: "d", Text: text}

	chunks, err := ChunkDocument(doc, Options{ChunkSize: 100, Overlap: 0})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for i, c := range chunks {
		assert.Equal(t, fmt.Sprintf("d_chunk_%d", i), c.ChunkID)
	}
}

func TestChunkDocuments_NumberingRestartsPerDocument(t *testing.T) {
	docs := []Document{
		{DocID: "first", Text: strings.Repeat("a", 250)},
		{DocID: "second", Text: strings.Repeat("b", 250)},
	}

	chunks, err := ChunkDocuments(docs, Options{ChunkSize: 100, Overlap: 10})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 2)

	assert.Equal(t, "first_chunk_0", chunks[0].ChunkID)

	var secondStart int
	for i, c := range chunks {
		if c.DocID == "second" {
			secondStart = i
			break
		}
	}
	assert.Equal(t, "second_chunk_0", chunks[secondStart].ChunkID)
}

func TestChunkDocuments_PropagatesBadConfig(t *testing.T) {
	docs := []Document{{DocID: "d", Text: "text"}}
	_, err := ChunkDocuments(docs, Options{ChunkSize: 10, Overlap: 10})
	assert.ErrorIs(t, err, ErrBadConfig)
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Chunk
		want int
	}{
		{
			name: "consecutive chunks overlap",
			a:    Chunk{DocID: "d", Start: 0, End: 100},
			b:    Chunk{DocID: "d", Start: 80, End: 180},
			want: 20,
		},
		{
			name: "order does not matter",
			a:    Chunk{DocID: "d", Start: 80, End: 180},
			b:    Chunk{DocID: "d", Start: 0, End: 100},
			want: 20,
		},
		{
			name: "disjoint ranges",
			a:    Chunk{DocID: "d", Start: 0, End: 50},
			b:    Chunk{DocID: "d", Start: 60, End: 100},
			want: 0,
		},
		{
			name: "different documents",
			a:    Chunk{DocID: "d1", Start: 0, End: 100},
			b:    Chunk{DocID: "d2", Start: 50, End: 150},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlap(tt.a, tt.b))
		})
	}
}
