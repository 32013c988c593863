package storage

import (
	"context"
	"errors"
	"fmt"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"venus/config"
	"venus/infras/mongo"
	"venus/infras/otel"
	"venus/infras/postgres"
	"venus/infras/s3"
	"venus/shared/constant"
)

var (
	ErrUnknownDriver = errors.New("unknown storage driver")
	ErrRedisDisabled = errors.New("redis storage driver selected but CACHE_REDIS_PRIMARY_HOST is empty")
)

// New opens the driver named by STORAGE_DRIVER. The returned cleanup closes
// whatever connection the driver opened; the shared redis client belongs to
// the caller.
func New(ctx context.Context, cfg *config.Config, redisClient *goRedis.Client, ot otel.Otel) (Store, func(), error) {
	var (
		store   Store
		cleanup = func() {}
	)

	driver := cfg.Storage.Driver
	if driver == "" {
		driver = constant.StorageDriverMemory
	}

	switch driver {
	case constant.StorageDriverMemory:
		store = NewMemory()

	case constant.StorageDriverRedis:
		if redisClient == nil {
			return nil, nil, ErrRedisDisabled
		}

		store = NewRedis(redisClient)

	case constant.StorageDriverPostgres:
		conn, err := postgres.New(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("opening postgres storage: %w", err)
		}

		store = NewPostgres(conn)
		cleanup = func() {
			if err := conn.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close postgres connection")
			}
		}

	case constant.StorageDriverMongo:
		conn, err := mongo.New(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("opening mongo storage: %w", err)
		}

		store = NewMongo(conn.Database.Collection(cfg.DB.Mongo.Collection))
		cleanup = func() {
			if err := conn.Close(context.Background()); err != nil {
				log.Error().Err(err).Msg("failed to close mongo connection")
			}
		}

	case constant.StorageDriverS3:
		objects, err := s3.New(cfg, ot)
		if err != nil {
			return nil, nil, fmt.Errorf("opening s3 storage: %w", err)
		}

		store = NewS3(objects)

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	log.Info().Str("driver", driver).Str("prefix", cfg.Storage.Prefix).Msg("Storage initialized")

	return WithPrefix(Instrument(store, driver, ot), cfg.Storage.Prefix), cleanup, nil
}
