package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const (
	KindCreateProfile = "create_profile"
)

// Job is the message put on a queue. Id is also the id of the system.Job row
// tracking it.
type Job struct {
	Id     string `json:"id"`
	Kind   string `json:"kind"`
	UserId int64  `json:"user_id"`
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
}

// RedisQueue pushes jobs onto a redis list that Run pops from, so any
// instance of the service may execute them.
type RedisQueue struct {
	client *redis.Client
	key    string
	worker *Worker

	cancel context.CancelFunc
	done   chan struct{}
}

func NewRedisQueue(client *redis.Client, key string, worker *Worker) *RedisQueue {
	return &RedisQueue{client: client, key: key, worker: worker}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, payload).Err()
}

// Start runs the consumer loop until Stop is called.
func (q *RedisQueue) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel
	q.done = make(chan struct{})

	go func() {
		defer close(q.done)
		q.run(ctx)
	}()
}

func (q *RedisQueue) Stop() {
	if q.cancel == nil {
		return
	}
	q.cancel()
	<-q.done
}

func (q *RedisQueue) run(ctx context.Context) {
	log.Info().Str("queue", q.key).Msg("Task consumer started")

	for {
		res, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
		if ctx.Err() != nil {
			log.Info().Str("queue", q.key).Msg("Task consumer stopped")
			return
		}
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			log.Error().Err(err).Str("queue", q.key).Msg("Could not pop task")
			time.Sleep(time.Second)
			continue
		}

		job := Job{}
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			log.Error().Err(err).Str("payload", res[1]).Msg("Dropping malformed task")
			continue
		}

		_ = q.worker.Handle(context.Background(), job)
	}
}

// InlineQueue runs each job on its own goroutine in this process. It is used
// when no redis is configured.
type InlineQueue struct {
	worker *Worker
	wg     sync.WaitGroup
}

func NewInlineQueue(worker *Worker) *InlineQueue {
	return &InlineQueue{worker: worker}
}

func (q *InlineQueue) Enqueue(ctx context.Context, job Job) error {
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		_ = q.worker.Handle(context.Background(), job)
	}()
	return nil
}

// Wait blocks until every enqueued job has finished.
func (q *InlineQueue) Wait() {
	q.wg.Wait()
}
