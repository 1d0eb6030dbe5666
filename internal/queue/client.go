package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lifebloodops/assistant/internal/config"
)

// Client enqueues background tasks. It is safe for concurrent use.
type Client struct {
	client *asynq.Client
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueIngestDirectory schedules a full reindex of the directory. Ingest
// runs can be slow on large corpora, hence the generous timeout.
func (c *Client) EnqueueIngestDirectory(payload IngestDirectoryPayload) error {
	return c.enqueue(TypeIngestDirectory, payload,
		asynq.MaxRetry(3), asynq.Timeout(15*time.Minute), asynq.Unique(time.Minute))
}

func (c *Client) enqueue(taskType string, payload interface{}, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if _, err := c.client.Enqueue(asynq.NewTask(taskType, data), opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", taskType, err)
	}
	return nil
}
