package events

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"venus/infras/kafka"
	"venus/infras/otel"
	"venus/shared/constant"
	"venus/shared/metrics"
	"venus/shared/timezone"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

// Bus delivers each event to every subscriber synchronously, then forwards
// it to Kafka when a client is attached. Subscriber and sink failures are
// logged and never fail the publishing operation.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	kafka    kafka.Client
	otel     otel.Otel
}

func NewBus(kafkaClient kafka.Client, ot otel.Otel) *Bus {
	return &Bus{
		kafka: kafkaClient,
		otel:  ot,
	}
}

func (b *Bus) Subscribe(handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers = append(b.handlers, handler)
}

func (b *Bus) Publish(ctx context.Context, event Event) error {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()

	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = timezone.Now()
	}

	scope.SetAttribute("event.kind", string(event.Kind))

	b.mu.RLock()
	handlers := b.handlers
	b.mu.RUnlock()

	result := resultOK

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			result = resultError
			scope.TraceError(err)
			log.Error().Err(err).Str("kind", string(event.Kind)).Str("event_id", event.ID).Msg("event subscriber failed")
		}
	}

	if b.kafka != nil {
		if err := b.kafka.SendMessages(ctx, kafka.Message{Key: event.Key(), Value: event}); err != nil {
			result = resultError
			scope.TraceError(err)
		}
	}

	metrics.EventsPublishedTotal.WithLabelValues(string(event.Kind), result).Inc()

	return nil
}
