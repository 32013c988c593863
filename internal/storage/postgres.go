package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venus/infras/postgres"
)

const (
	queryGetBucket    = `SELECT value FROM buckets WHERE key = $1`
	queryUpsertBucket = `INSERT INTO buckets (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	queryDeleteBucket = `DELETE FROM buckets WHERE key = $1`
)

type postgresStore struct {
	db *postgres.Connection
}

// NewPostgres keeps buckets as rows of the buckets table created by
// cmd/migrate.
func NewPostgres(db *postgres.Connection) Store {
	return &postgresStore{db: db}
}

func (p *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := p.db.Read.GetContext(ctx, &value, queryGetBucket, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("postgres get %s: %w", key, err)
	}

	return value, nil
}

func (p *postgresStore) Put(ctx context.Context, key string, value []byte) error {
	if _, err := p.db.Write.ExecContext(ctx, queryUpsertBucket, key, value); err != nil {
		return fmt.Errorf("postgres put %s: %w", key, err)
	}

	return nil
}

func (p *postgresStore) Delete(ctx context.Context, key string) error {
	if _, err := p.db.Write.ExecContext(ctx, queryDeleteBucket, key); err != nil {
		return fmt.Errorf("postgres delete %s: %w", key, err)
	}

	return nil
}
