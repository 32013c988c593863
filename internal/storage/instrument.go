package storage

import (
	"context"
	"time"

	"venus/infras/otel"
	"venus/shared/constant"
	"venus/shared/metrics"
)

const (
	operationGet    = "get"
	operationPut    = "put"
	operationDelete = "delete"

	resultOK    = "ok"
	resultError = "error"
)

type instrumented struct {
	next   Store
	driver string
	otel   otel.Otel
}

// Instrument traces every bucket operation and records it in the storage
// metrics under the driver label.
func Instrument(next Store, driver string, ot otel.Otel) Store {
	return &instrumented{next: next, driver: driver, otel: ot}
}

func (i *instrumented) Get(ctx context.Context, key string) (value []byte, err error) {
	ctx, done := i.observe(ctx, operationGet, key)
	defer func() { done(err) }()

	return i.next.Get(ctx, key) //nolint:wrapcheck
}

func (i *instrumented) Put(ctx context.Context, key string, value []byte) (err error) {
	ctx, done := i.observe(ctx, operationPut, key)
	defer func() { done(err) }()

	return i.next.Put(ctx, key, value) //nolint:wrapcheck
}

func (i *instrumented) Delete(ctx context.Context, key string) (err error) {
	ctx, done := i.observe(ctx, operationDelete, key)
	defer func() { done(err) }()

	return i.next.Delete(ctx, key) //nolint:wrapcheck
}

func (i *instrumented) observe(ctx context.Context, operation, key string) (context.Context, func(error)) {
	ctx, scope := i.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+"."+operation)
	scope.SetAttributes(map[string]any{
		constant.OtelBucketAttributeKey: key,
		"driver":                        i.driver,
	})

	started := time.Now()

	return ctx, func(err error) {
		result := resultOK
		if err != nil {
			result = resultError
			scope.TraceError(err)
		}

		metrics.StorageOperationsTotal.WithLabelValues(i.driver, operation, result).Inc()
		metrics.StorageOperationDuration.WithLabelValues(i.driver, operation).Observe(time.Since(started).Seconds())
		scope.End()
	}
}
