package chunker

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadConfig indicates invalid chunking parameters. It is a programming or
// configuration mistake, not a transient condition.
var ErrBadConfig = errors.New("overlap_chars must be smaller than chunk_size_chars")

// Document is the unit of ingestion: a full text with a stable identifier.
type Document struct {
	DocID string
	Title string
	Text  string
}

// Chunk is a contiguous, addressable window of a document's text. Start and
// End are rune offsets into the owning document; Text is the window content
// with surrounding whitespace trimmed.
type Chunk struct {
	DocID   string
	ChunkID string
	Start   int
	End     int
	Text    string
	Title   string
}

type Options struct {
	ChunkSize int // window size in characters
	Overlap   int // characters shared by consecutive windows
}

func DefaultOptions() Options {
	return Options{
		ChunkSize: 2000,
		Overlap:   200,
	}
}

// ChunkDocument splits a document into overlapping fixed-size windows. Chunk
// IDs are "<doc_id>_chunk_<index>" with indices assigned only to emitted
// chunks, so they stay contiguous even when blank windows are dropped. A
// document whose text fits in a single window is returned as one chunk; blank
// text yields an empty slice.
func ChunkDocument(doc Document, opts Options) ([]Chunk, error) {
	if opts.Overlap >= opts.ChunkSize {
		return nil, fmt.Errorf("chunk size %d, overlap %d: %w", opts.ChunkSize, opts.Overlap, ErrBadConfig)
	}

	if strings.TrimSpace(doc.Text) == "" {
		return nil, nil
	}

	runes := []rune(doc.Text)
	length := len(runes)

	if length <= opts.ChunkSize {
		return []Chunk{{
			DocID:   doc.DocID,
			ChunkID: chunkID(doc.DocID, 0),
			Start:   0,
			End:     length,
			Text:    doc.Text,
			Title:   doc.Title,
		}}, nil
	}

	step := opts.ChunkSize - opts.Overlap

	var chunks []Chunk
	index := 0

	for start := 0; start < length; start += step {
		end := start + opts.ChunkSize
		if end > length {
			end = length
		}

		text := strings.TrimSpace(string(runes[start:end]))
		if text != "" {
			chunks = append(chunks, Chunk{
				DocID:   doc.DocID,
				ChunkID: chunkID(doc.DocID, index),
				Start:   start,
				End:     end,
				Text:    text,
				Title:   doc.Title,
			})
			index++
		}

		if end >= length {
			break
		}
	}

	return chunks, nil
}

// ChunkDocuments chunks each document in order, restarting chunk numbering
// at 0 for every document.
func ChunkDocuments(docs []Document, opts Options) ([]Chunk, error) {
	var all []Chunk
	for _, doc := range docs {
		chunks, err := ChunkDocument(doc, opts)
		if err != nil {
			return nil, fmt.Errorf("chunk document %s: %w", doc.DocID, err)
		}
		all = append(all, chunks...)
	}
	return all, nil
}

// Overlap reports the number of characters shared by two chunks of the same
// document, 0 for chunks of different documents or disjoint ranges.
func Overlap(a, b Chunk) int {
	if a.DocID != b.DocID {
		return 0
	}

	first, second := a, b
	if b.Start < a.Start {
		first, second = b, a
	}

	if first.End > second.Start {
		return first.End - second.Start
	}
	return 0
}

func chunkID(docID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", docID, index)
}
