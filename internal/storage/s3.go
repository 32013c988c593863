package storage

import (
	"context"
	"errors"

	"venus/infras/s3"
)

type s3Store struct {
	objects s3.S3
}

// NewS3 keeps one object per bucket under the configured directory.
func NewS3(objects s3.S3) Store {
	return &s3Store{objects: objects}
}

func (s *s3Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.objects.GetObject(ctx, key)
	if errors.Is(err, s3.ErrObjectNotFound) {
		return nil, nil
	}

	return data, err //nolint:wrapcheck
}

func (s *s3Store) Put(ctx context.Context, key string, value []byte) error {
	return s.objects.PutObject(ctx, key, value) //nolint:wrapcheck
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	return s.objects.DeleteObject(ctx, key) //nolint:wrapcheck
}
