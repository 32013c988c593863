// Package storage is the bucket contract every repository persists through:
// a flat key space where each key holds one JSON snapshot of a collection.
package storage

//go:generate go run go.uber.org/mock/mockgen -source=./storage.go -destination=./mocks/storage_mock.go -package=mocks

import (
	"context"
)

const (
	KeyUsers         = "venus_users"
	KeyRooms         = "venus_rooms"
	KeyReservations  = "venus_reservations"
	KeyNotifications = "venus_notifications"
	KeySessions      = "venus_sessions"
)

// Store reads and writes whole buckets. Get returns nil, nil when the key
// has never been written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type prefixed struct {
	Store
	prefix string
}

// WithPrefix namespaces every key, letting several deployments share one
// backend.
func WithPrefix(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}

	return &prefixed{Store: store, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.Store.Get(ctx, p.prefix+key) //nolint:wrapcheck
}

func (p *prefixed) Put(ctx context.Context, key string, value []byte) error {
	return p.Store.Put(ctx, p.prefix+key, value) //nolint:wrapcheck
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.Store.Delete(ctx, p.prefix+key) //nolint:wrapcheck
}
