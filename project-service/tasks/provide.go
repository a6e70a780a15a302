package tasks

import (
	"context"

	"github.com/devteams/devteams-server/project-service/config"
	"github.com/devteams/devteams-server/repos"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

func ProvideWorker(config *config.Config, jobs *repos.JobRepo, profiles *repos.ProfileRepo, users *repos.UserRepo, mailer Mailer) *Worker {
	worker := NewWorker(jobs, profiles, users, mailer)
	worker.AppName = config.AppName
	return worker
}

// ProvideQueue consumes from redis when a client is configured and falls back
// to running jobs in process otherwise.
func ProvideQueue(client *redis.Client, config *config.Config, worker *Worker, lc fx.Lifecycle) Queue {
	if client == nil {
		log.Warn().Msg("REDIS_URL not set, running tasks in process")
		return NewInlineQueue(worker)
	}

	queue := NewRedisQueue(client, config.TaskQueue, worker)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			queue.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			queue.Stop()
			return client.Close()
		},
	})

	return queue
}
