// Package mail implements transactional email dispatch: templated messages
// are enqueued onto a Redis list and delivered by a background worker over
// SMTP. Enqueueing is fire-and-forget from the caller's perspective.
package mail

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Job is one queued email-send request.
type Job struct {
	Template string            `json:"template"`
	To       string            `json:"to"`
	Vars     map[string]string `json:"vars"`
}

// Queue is a Redis list used as a FIFO job queue (LPUSH producer,
// BRPOP consumer).
type Queue struct {
	client *redis.Client
	name   string
}

func NewQueue(client *redis.Client, name string) *Queue {
	return &Queue{client: client, name: name}
}

func (q *Queue) Push(ctx context.Context, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if err := q.client.LPush(ctx, q.name, encoded).Err(); err != nil {
		return fmt.Errorf("failed to enqueue mail job: %w", err)
	}

	return nil
}

// Pop blocks up to timeout for the next job. It returns (nil, nil) when the
// queue stays empty, so the worker loop can poll without special-casing.
func (q *Queue) Pop(ctx context.Context, timeout time.Duration) (*Job, error) {
	result, err := q.client.BRPop(ctx, timeout, q.name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue mail job: %w", err)
	}

	// BRPop returns [key, value].
	if len(result) != 2 {
		return nil, fmt.Errorf("unexpected BRPOP reply length %d", len(result))
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("malformed mail job: %w", err)
	}

	return &job, nil
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.name).Result()
}
