package utils

import (
	"context"

	"github.com/go-redis/redis/v8"
)

type RedisConfig struct {
	RedisUrl string `env:"REDIS_URL"`
}

// ProvideRedis returns a nil client when no REDIS_URL is configured; callers
// fall back to in-process work in that case.
func ProvideRedis(config *RedisConfig) (*redis.Client, error) {
	if len(config.RedisUrl) == 0 {
		return nil, nil
	}

	options, err := redis.ParseURL(config.RedisUrl)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		return nil, err
	}

	return client, nil
}
