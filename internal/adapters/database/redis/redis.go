package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/randomgive/giveaway-bot/internal/adapters/database/redis/states"
)

// Client bundles the redis-backed storages the bot uses. Only input states
// live here; giveaway state itself is deliberately in process memory.
type Client struct {
	States *states.Storage
}

type Options struct {
	Host     string
	Port     string
	Password string
}

func New(opts Options) (*Client, error) {
	stateStorage := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", opts.Host, opts.Port),
		Password: opts.Password,
		DB:       0,
	})
	if err := stateStorage.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping state storage: %w", err)
	}

	return &Client{
		States: states.NewStorage(stateStorage),
	}, nil
}
