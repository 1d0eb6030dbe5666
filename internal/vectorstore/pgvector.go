package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/lifebloodops/assistant/pkg/chunker"
)

const defaultTable = "document_chunks"

// PgVectorStore is the persistent Store backend, one table per collection
// with a pgvector embedding column. The table is created lazily on the first
// upsert because the column dimension is only known once vectors arrive.
type PgVectorStore struct {
	db    *pgxpool.Pool
	table string
}

func NewPgVectorStore(db *pgxpool.Pool, table string) *PgVectorStore {
	if table == "" {
		table = defaultTable
	}
	return &PgVectorStore{db: db, table: table}
}

func (s *PgVectorStore) Upsert(ctx context.Context, chunks []chunker.Chunk, vectors [][]float32) error {
	if err := validateBatch(chunks, vectors); err != nil {
		return err
	}
	if len(chunks) == 0 {
		return nil
	}

	dim := len(vectors[0])

	current, err := s.dimension(ctx)
	if err != nil {
		return fmt.Errorf("check collection dimension: %w", err)
	}
	if current != 0 && current != dim {
		slog.Warn("embedding dimension changed, resetting collection",
			"table", s.table,
			"have", current,
			"want", dim,
		)
		if err := s.Reset(ctx); err != nil {
			return fmt.Errorf("reset collection: %w", err)
		}
		current = 0
	}
	if current == 0 {
		if err := s.createTable(ctx, dim); err != nil {
			return fmt.Errorf("create collection: %w", err)
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, c := range chunks {
		_, err := tx.Exec(ctx,
			fmt.Sprintf(`INSERT INTO %s (chunk_id, doc_id, title, content, start_offset, end_offset, embedding)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (chunk_id) DO UPDATE
			 SET doc_id = $2, title = $3, content = $4, start_offset = $5, end_offset = $6, embedding = $7`, s.table),
			c.ChunkID, c.DocID, c.Title, c.Text, c.Start, c.End, pgvector.NewVector(vectors[i]),
		)
		if err != nil {
			return fmt.Errorf("upsert chunk %s: %w", c.ChunkID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PgVectorStore) Query(ctx context.Context, vector []float32, topK int) ([]Hit, error) {
	if len(vector) == 0 {
		return nil, nil
	}
	if topK <= 0 {
		topK = 5
	}

	dim, err := s.dimension(ctx)
	if err != nil {
		return nil, fmt.Errorf("check collection dimension: %w", err)
	}
	if dim == 0 {
		return nil, nil
	}

	rows, err := s.db.Query(ctx,
		fmt.Sprintf(`SELECT doc_id, coalesce(title, ''), chunk_id, content, start_offset, end_offset,
		        1 - (embedding <=> $1) AS score
		 FROM %s
		 ORDER BY embedding <=> $1
		 LIMIT $2`, s.table),
		pgvector.NewVector(vector), topK,
	)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	defer rows.Close()

	var hits []Hit
	for rows.Next() {
		var h Hit
		if err := rows.Scan(&h.DocID, &h.Title, &h.ChunkID, &h.Text, &h.Start, &h.End, &h.Score); err != nil {
			return nil, fmt.Errorf("scan hit: %w", err)
		}
		h.Score = clampScore(h.Score)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func (s *PgVectorStore) Count(ctx context.Context) (int, error) {
	dim, err := s.dimension(ctx)
	if err != nil {
		return 0, fmt.Errorf("check collection dimension: %w", err)
	}
	if dim == 0 {
		return 0, nil
	}

	var count int
	if err := s.db.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM %s", s.table)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count chunks: %w", err)
	}
	return count, nil
}

func (s *PgVectorStore) Reset(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", s.table)); err != nil {
		return fmt.Errorf("drop collection table: %w", err)
	}
	return nil
}

func (s *PgVectorStore) createTable(ctx context.Context, dim int) error {
	if _, err := s.db.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("ensure vector extension: %w", err)
	}
	_, err := s.db.Exec(ctx, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			chunk_id     text PRIMARY KEY,
			doc_id       text NOT NULL,
			title        text,
			content      text NOT NULL,
			start_offset int NOT NULL DEFAULT 0,
			end_offset   int NOT NULL DEFAULT 0,
			embedding    vector(%d) NOT NULL
		)`, s.table, dim))
	if err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// dimension reports the embedding column dimension of the collection table,
// or 0 when the table does not exist yet.
func (s *PgVectorStore) dimension(ctx context.Context) (int, error) {
	var dim int
	err := s.db.QueryRow(ctx,
		`SELECT atttypmod FROM pg_attribute WHERE attrelid = to_regclass($1) AND attname = 'embedding'`,
		s.table,
	).Scan(&dim)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return dim, nil
}
