package di

import (
	"context"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"venus/config"
	"venus/infras/kafka"
	"venus/infras/otel"
	"venus/infras/redis"
	"venus/internal/domains/notification/service"
	seedService "venus/internal/domains/seed/service"
	"venus/internal/events"
	"venus/transport/http"
)

// App is everything cmd/app needs once the graph is built.
type App struct {
	HTTP *http.HTTP
	Seed seedService.Seed
}

func provideOtel(cfg *config.Config) (otel.Otel, func()) {
	ot := otel.New(cfg)

	return ot, func() {
		if err := ot.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to flush traces")
		}
	}
}

func provideRedis(cfg *config.Config) (*goRedis.Client, func(), error) {
	client, err := redis.New(cfg)
	if err != nil {
		return nil, nil, err //nolint:wrapcheck
	}

	return client, func() {
		if client == nil {
			return
		}

		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis client")
		}
	}, nil
}

// provideKafka returns a nil client when publishing to Kafka is switched off.
func provideKafka(cfg *config.Config) (kafka.Client, func()) {
	if !cfg.Kafka.Enable {
		return nil, func() {}
	}

	client := kafka.New(cfg)

	return client, func() {
		if err := client.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close kafka writer")
		}
	}
}

// provideBus wires the notification feed as the first subscriber.
func provideBus(kafkaClient kafka.Client, ot otel.Otel, notifications service.Notification) *events.Bus {
	bus := events.NewBus(kafkaClient, ot)
	bus.Subscribe(notifications.Record)

	return bus
}
