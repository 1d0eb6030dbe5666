package rag

import (
	"context"
	"fmt"

	"github.com/lifebloodops/assistant/internal/embedding"
	"github.com/lifebloodops/assistant/internal/vectorstore"
)

// Retriever embeds a query and runs it against the vector store.
type Retriever struct {
	store    vectorstore.Store
	embedder embedding.Provider
}

func NewRetriever(store vectorstore.Store, embedder embedding.Provider) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]vectorstore.Hit, error) {
	queryVec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := r.store.Query(ctx, queryVec, topK)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	return hits, nil
}
