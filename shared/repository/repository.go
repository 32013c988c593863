package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"venus/infras/otel"
	"venus/internal/storage"
	"venus/shared/constant"
	"venus/shared/logger"
)

// Repository is a collection of T persisted as one JSON array under a
// single bucket key. Every write rewrites the whole bucket, so all writers
// of a bucket must share one Repository.
type Repository[T any] struct {
	store  storage.Store
	otel   otel.Otel
	key    string
	entity string
	mu     *sync.RWMutex
}

func NewRepository[T any](entityName, key string, store storage.Store, otl otel.Otel) Repository[T] {
	return Repository[T]{
		store:  store,
		otel:   otl,
		key:    key,
		entity: entityName,
		mu:     &sync.RWMutex{},
	}
}

// Load returns the bucket contents. A bucket that is absent or does not
// hold a JSON array reads as empty.
func (repo *Repository[T]) Load(ctx context.Context) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Load", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	items, err := repo.load(ctx)
	scope.TraceIfError(err)

	return items, err
}

// Mutate runs fn over the current contents under the bucket's write lock.
// The result is written back only when fn reports a change.
func (repo *Repository[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, bool, error)) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Mutate", constant.OtelRepositoryScopeName, repo.entity))
	defer scope.End()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	items, err := repo.load(ctx)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	updated, changed, err := fn(items)
	if err != nil {
		return err
	}

	if !changed {
		return nil
	}

	if err = repo.save(ctx, updated); err != nil {
		scope.TraceError(err)

		return err
	}

	return nil
}

// SeedIfEmpty writes items only when the bucket holds nothing. It reports
// whether it wrote.
func (repo *Repository[T]) SeedIfEmpty(ctx context.Context, items []T) (bool, error) {
	seeded := false

	err := repo.Mutate(ctx, func(current []T) ([]T, bool, error) {
		if len(current) > 0 {
			return current, false, nil
		}

		seeded = true

		return items, true, nil
	})

	return seeded, err
}

func (repo *Repository[T]) load(ctx context.Context) ([]T, error) {
	raw, err := repo.store.Get(ctx, repo.key)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to read bucket (%s): %w", repo.entity, err)
	}

	items := []T{}
	if len(raw) == 0 {
		return items, nil
	}

	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Err(err).Str("bucket", repo.key).Msg("bucket content is not a valid collection, reading as empty")

		return []T{}, nil
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

func (repo *Repository[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode bucket (%s): %w", repo.entity, err)
	}

	if err := repo.store.Put(ctx, repo.key, raw); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to write bucket (%s): %w", repo.entity, err)
	}

	return nil
}
