package embedding

import (
	"context"
	"crypto/sha256"
)

const defaultFakeDimension = 384

// FakeProvider generates deterministic embeddings from a content hash. It
// needs no network access and always returns the same vector for the same
// text, which makes it suitable for tests and offline runs.
type FakeProvider struct {
	dimension int
}

func NewFakeProvider(dimension int) *FakeProvider {
	if dimension <= 0 {
		dimension = defaultFakeDimension
	}
	return &FakeProvider{dimension: dimension}
}

func (p *FakeProvider) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	vectors := make([][]float32, len(texts))
	for i, t := range texts {
		vectors[i] = p.embed(t)
	}
	return vectors, nil
}

func (p *FakeProvider) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return p.embed(text), nil
}

// embed maps the sha256 digest of the text onto the vector, each byte
// normalized into [-1, 1].
func (p *FakeProvider) embed(text string) []float32 {
	digest := sha256.Sum256([]byte(text))

	vector := make([]float32, p.dimension)
	for i := range vector {
		b := digest[i%len(digest)]
		vector[i] = float32(b)/255.0*2.0 - 1.0
	}
	return vector
}
