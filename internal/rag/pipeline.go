package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lifebloodops/assistant/internal/config"
	"github.com/lifebloodops/assistant/internal/embedding"
	"github.com/lifebloodops/assistant/internal/llm"
	"github.com/lifebloodops/assistant/internal/vectorstore"
	"github.com/lifebloodops/assistant/pkg/chunker"
)

// Outcome tags how an Ask request terminated. Expected conditions such as
// "no relevant documents" are normal values here, not errors.
type Outcome string

const (
	OutcomeAnswered      Outcome = "answered"
	OutcomeEmptyQuestion Outcome = "empty_question"
	OutcomeEmbedError    Outcome = "embed_error"
	OutcomeSearchError   Outcome = "search_error"
	OutcomeNoSources     Outcome = "no_sources"
	OutcomePromptError   Outcome = "prompt_error"
	OutcomeGenerateError Outcome = "generate_error"
	OutcomeInternalError Outcome = "internal_error"
)

// Fixed user-facing fallback answers. Callers distinguish outcomes via
// Result.Outcome; the answer text stays stable for display.
const (
	answerEmptyQuestion   = "Please provide a specific question for me to answer."
	answerEmbedError      = "I encountered an error processing your question. Please try again."
	answerSearchError     = "I encountered an error searching for relevant information. Please try again."
	answerNoSources       = "I don't have enough information in the docs to answer that."
	answerPromptError     = "I encountered an error preparing the response. Please try again."
	answerGenerateError   = "I encountered an error generating the response. Please try again."
	answerEmptyGeneration = "I was unable to generate a response."
	answerInternalError   = "I encountered an unexpected error. Please try again."
	noSourcesAnswer       = "I don't have access to relevant sources to answer your question about this topic. Please try rephrasing your question or ask about a different aspect of medical operations."
)

// Result is what every Ask returns: a well-formed answer with citations,
// regardless of what failed along the way.
type Result struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations"`
	Outcome   Outcome    `json:"-"`
}

// IngestStats reports what an ingestion run indexed.
type IngestStats struct {
	IndexedDocs   int `json:"indexed_docs"`
	IndexedChunks int `json:"indexed_chunks"`
}

// Status describes the pipeline's wiring and current index size.
type Status struct {
	VectorStore       string `json:"vector_store"`
	EmbeddingProvider string `json:"embedding_provider"`
	LLMClient         string `json:"llm_client"`
	IndexedChunks     int    `json:"indexed_chunks"`
}

// Options carries the pipeline's tuning knobs, resolved once at startup.
type Options struct {
	ChunkOptions  chunker.Options
	TopK          int
	MinScore      float64
	MinTextLength int
	SnippetMaxLen int
}

func OptionsFromConfig(cfg config.RAGConfig) Options {
	return Options{
		ChunkOptions: chunker.Options{
			ChunkSize: cfg.ChunkSize,
			Overlap:   cfg.ChunkOverlap,
		},
		TopK:          cfg.TopK,
		MinScore:      cfg.MinScore,
		MinTextLength: cfg.MinTextLength,
		SnippetMaxLen: cfg.SnippetMaxLen,
	}
}

// Pipeline orchestrates the query path (embed, retrieve, filter, prompt,
// generate, cite) and the ingestion path (chunk, embed, upsert).
type Pipeline struct {
	store     vectorstore.Store
	embedder  embedding.Provider
	generator llm.Client
	retriever *Retriever
	opts      Options
}

func NewPipeline(store vectorstore.Store, embedder embedding.Provider, generator llm.Client, opts Options) *Pipeline {
	if opts.ChunkOptions.ChunkSize <= 0 {
		opts.ChunkOptions = chunker.DefaultOptions()
	}
	if opts.TopK <= 0 {
		opts.TopK = 5
	}
	if opts.MinScore <= 0 {
		opts.MinScore = DefaultMinScore
	}
	if opts.MinTextLength <= 0 {
		opts.MinTextLength = DefaultMinTextLength
	}
	if opts.SnippetMaxLen <= 0 {
		opts.SnippetMaxLen = DefaultSnippetMaxLen
	}

	return &Pipeline{
		store:     store,
		embedder:  embedder,
		generator: generator,
		retriever: NewRetriever(store, embedder),
		opts:      opts,
	}
}

// Ask runs one question through the full pipeline. It never returns an
// error: every failure mode is absorbed into a fixed fallback answer with
// empty citations, and the Outcome field says which path was taken.
func (p *Pipeline) Ask(ctx context.Context, question, mode string, topK int) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in rag pipeline", "panic", r)
			result = fallback(OutcomeInternalError, answerInternalError)
		}
	}()

	question = strings.TrimSpace(question)
	if question == "" {
		return fallback(OutcomeEmptyQuestion, answerEmptyQuestion)
	}
	if topK <= 0 {
		topK = p.opts.TopK
	}

	slog.Info("processing rag query", "mode", mode, "top_k", topK)

	queryVec, err := p.embedder.EmbedQuery(ctx, question)
	if err != nil {
		slog.Error("embed query failed", "error", err)
		return fallback(OutcomeEmbedError, answerEmbedError)
	}

	hits, err := p.store.Query(ctx, queryVec, topK)
	if err != nil {
		slog.Error("vector store query failed", "error", err)
		return fallback(OutcomeSearchError, answerSearchError)
	}

	kept := Filter(hits, p.opts.MinScore, p.opts.MinTextLength)
	if len(kept) == 0 {
		slog.Info("no meaningful hits retrieved, returning fallback")
		return fallback(OutcomeNoSources, answerNoSources)
	}

	prompt, err := BuildPrompt(question, kept, mode)
	if err != nil {
		slog.Error("prompt build failed", "error", err)
		return fallback(OutcomePromptError, answerPromptError)
	}

	raw, err := p.generator.Generate(ctx, prompt)
	if err != nil {
		slog.Error("llm generation failed", "error", err)
		return fallback(OutcomeGenerateError, answerGenerateError)
	}

	answer := strings.TrimSpace(raw)
	if answer == "" {
		answer = answerEmptyGeneration
	}

	citations := buildCitations(kept, p.opts.SnippetMaxLen)
	slog.Info("rag query answered", "citations", len(citations))

	return Result{
		Answer:    answer,
		Citations: citations,
		Outcome:   OutcomeAnswered,
	}
}

// Search exposes filtered retrieval without generation.
func (p *Pipeline) Search(ctx context.Context, query string, topK int) ([]vectorstore.Hit, error) {
	if topK <= 0 {
		topK = p.opts.TopK
	}
	hits, err := p.retriever.Retrieve(ctx, query, topK)
	if err != nil {
		return nil, err
	}
	return Filter(hits, p.opts.MinScore, p.opts.MinTextLength), nil
}

// Ingest chunks the documents, embeds every chunk, and upserts the batch.
// Unlike Ask, errors here propagate: they indicate configuration or backend
// problems the caller must see.
func (p *Pipeline) Ingest(ctx context.Context, docs []chunker.Document) (IngestStats, error) {
	chunks, err := chunker.ChunkDocuments(docs, p.opts.ChunkOptions)
	if err != nil {
		return IngestStats{}, fmt.Errorf("chunk documents: %w", err)
	}
	if len(chunks) == 0 {
		return IngestStats{}, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return IngestStats{}, fmt.Errorf("embed chunks: %w", err)
	}

	if err := p.store.Upsert(ctx, chunks, vectors); err != nil {
		return IngestStats{}, fmt.Errorf("upsert chunks: %w", err)
	}

	indexedDocs := make(map[string]struct{})
	for _, c := range chunks {
		indexedDocs[c.DocID] = struct{}{}
	}

	stats := IngestStats{
		IndexedDocs:   len(indexedDocs),
		IndexedChunks: len(chunks),
	}
	slog.Info("ingestion complete", "docs", stats.IndexedDocs, "chunks", stats.IndexedChunks)
	return stats, nil
}

// GetStatus reports the pipeline's component wiring and index size.
func (p *Pipeline) GetStatus(ctx context.Context) Status {
	count, err := p.store.Count(ctx)
	if err != nil {
		slog.Warn("could not count indexed chunks", "error", err)
		count = 0
	}
	return Status{
		VectorStore:       fmt.Sprintf("%T", p.store),
		EmbeddingProvider: fmt.Sprintf("%T", p.embedder),
		LLMClient:         fmt.Sprintf("%T", p.generator),
		IndexedChunks:     count,
	}
}

func fallback(outcome Outcome, answer string) Result {
	return Result{
		Answer:    answer,
		Citations: []Citation{},
		Outcome:   outcome,
	}
}
