package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bucketDocument struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type mongoStore struct {
	collection *mongo.Collection
}

// NewMongo keeps one document per bucket, keyed by _id.
func NewMongo(collection *mongo.Collection) Store {
	return &mongoStore{collection: collection}
}

func (m *mongoStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc bucketDocument

	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("mongo find %s: %w", key, err)
	}

	return doc.Value, nil
}

func (m *mongoStore) Put(ctx context.Context, key string, value []byte) error {
	doc := bucketDocument{Key: key, Value: value, UpdatedAt: time.Now().UTC()}

	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo replace %s: %w", key, err)
	}

	return nil
}

func (m *mongoStore) Delete(ctx context.Context, key string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}

	return nil
}
