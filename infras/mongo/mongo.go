package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"venus/config"
)

const defaultTimeout = 10 * time.Second

type Connection struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// New connects and pings within the configured timeout.
func New(ctx context.Context, cfg *config.Config) (*Connection, error) {
	timeout := time.Duration(cfg.DB.Mongo.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.DB.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)

		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	log.Info().Str("database", cfg.DB.Mongo.Database).Msg("Connected to MongoDB")

	return &Connection{
		Client:   client,
		Database: client.Database(cfg.DB.Mongo.Database),
	}, nil
}

func (c *Connection) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx) //nolint:wrapcheck
}
