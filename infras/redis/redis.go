package redis

import (
	"context"
	"fmt"
	"net"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"venus/config"
)

// New connects to the primary redis. It returns nil when no host is
// configured; callers treat a nil client as "redis disabled".
func New(config *config.Config) (*goRedis.Client, error) {
	primary := config.Cache.Redis.Primary
	if primary.Host == "" {
		log.Info().Msg("Redis host not configured, cache disabled")

		return nil, nil //nolint:nilnil
	}

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().
		Int("db", primary.DB).
		Str("host", primary.Host).
		Str("port", primary.Port).
		Msg("Connected to Redis")

	return client, nil
}
