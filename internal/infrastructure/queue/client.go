package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"library-backend/internal/shared"
)

// Client enqueues background tasks.
type Client struct {
	client *asynq.Client
}

// NewClient creates a new queue client
func NewClient(redisAddress string) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddress}),
	}
}

// EnqueueOverdueNotice schedules a notice for one overdue lending
func (c *Client) EnqueueOverdueNotice(ctx context.Context, payload shared.OverdueNoticePayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal overdue notice payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeSendOverdueNotice, data)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueLending),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue overdue notice: %w", err)
	}
	return nil
}

// Close releases the underlying redis connection
func (c *Client) Close() error {
	return c.client.Close()
}
