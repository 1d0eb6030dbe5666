// Package cache holds the redis-backed answer cache for the query path.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lifebloodops/assistant/internal/rag"
)

// AnswerCache memoizes fully-formed answers keyed by the normalized
// question, response mode, and top-k. A nil *AnswerCache is a valid no-op
// cache, so the pipeline wiring stays the same with or without redis.
type AnswerCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAnswerCache(client *redis.Client, ttl time.Duration) *AnswerCache {
	return &AnswerCache{client: client, ttl: ttl}
}

// Get returns the cached result for the question, or ok=false on a miss.
// Redis errors degrade to a miss.
func (c *AnswerCache) Get(ctx context.Context, question, mode string, topK int) (rag.Result, bool) {
	if c == nil || c.client == nil {
		return rag.Result{}, false
	}

	val, err := c.client.Get(ctx, c.key(question, mode, topK)).Result()
	if err != nil {
		return rag.Result{}, false
	}

	var res rag.Result
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		return rag.Result{}, false
	}
	res.Outcome = rag.OutcomeAnswered
	return res, true
}

// Set stores a result. Only answered results are worth caching; fallback
// answers are cheap to recompute and may be transient.
func (c *AnswerCache) Set(ctx context.Context, question, mode string, topK int, res rag.Result) error {
	if c == nil || c.client == nil {
		return nil
	}
	if res.Outcome != rag.OutcomeAnswered {
		return nil
	}

	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal cached answer: %w", err)
	}
	return c.client.Set(ctx, c.key(question, mode, topK), data, c.ttl).Err()
}

// Flush drops every cached answer. Ingestion calls this so stale answers
// never outlive a reindex.
func (c *AnswerCache) Flush(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, "answer:*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan answer keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("delete answer keys: %w", err)
	}
	return nil
}

func (c *AnswerCache) key(question, mode string, topK int) string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d", normalized, strings.ToLower(strings.TrimSpace(mode)), topK))
	return "answer:" + hex.EncodeToString(sum[:16])
}
