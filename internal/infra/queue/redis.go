package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"atmo-monitor/internal/domain"
)

// RedisWelcomeQueue реализует очередь задач приветствия на базе Redis lists.
type RedisWelcomeQueue struct {
	client *redis.Client
	key    string
}

// NewRedisWelcomeQueue создаёт очередь по указанному ключу.
func NewRedisWelcomeQueue(client *redis.Client, key string) *RedisWelcomeQueue {
	return &RedisWelcomeQueue{client: client, key: key}
}

var _ domain.WelcomeQueue = (*RedisWelcomeQueue)(nil)

// Enqueue публикует задачу в очередь.
func (q *RedisWelcomeQueue) Enqueue(ctx context.Context, job domain.WelcomeJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("push job: %w", err)
	}
	return nil
}

// Pop блокирующе читает задачу из очереди.
func (q *RedisWelcomeQueue) Pop(ctx context.Context) (domain.WelcomeJob, error) {
	for {
		if err := ctx.Err(); err != nil {
			return domain.WelcomeJob{}, err
		}

		res, err := q.client.BRPop(ctx, time.Second, q.key).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				if ctx.Err() != nil {
					return domain.WelcomeJob{}, ctx.Err()
				}
				continue
			}
			if errors.Is(err, redis.Nil) {
				continue
			}
			return domain.WelcomeJob{}, err
		}
		if len(res) != 2 {
			return domain.WelcomeJob{}, errors.New("redis queue: unexpected response")
		}
		var job domain.WelcomeJob
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			return domain.WelcomeJob{}, fmt.Errorf("decode job: %w", err)
		}
		return job, nil
	}
}
