package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lifebloodops/assistant/internal/rag"
)

func TestNilCacheIsNoOp(t *testing.T) {
	var c *AnswerCache

	_, ok := c.Get(context.Background(), "question", "general", 5)
	assert.False(t, ok)

	assert.NoError(t, c.Set(context.Background(), "question", "general", 5, rag.Result{Outcome: rag.OutcomeAnswered}))
	assert.NoError(t, c.Flush(context.Background()))
}

func TestKeyNormalization(t *testing.T) {
	c := &AnswerCache{}

	a := c.key("  What Are The Rules? ", "General", 5)
	b := c.key("what are the rules?", "general", 5)
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, c.key("what are the rules?", "checklist", 5))
	assert.NotEqual(t, a, c.key("what are the rules?", "general", 3))
	assert.Contains(t, a, "answer:")
}
