package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoCollection = "subject_cache"

type mongoEntry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	CreatedAt time.Time `bson:"created_at"`
}

// Mongo keeps entries in a MongoDB collection. Expiry is delegated to a TTL
// index on created_at. The client belongs to the caller and is not closed here.
type Mongo struct {
	collection *mongo.Collection
}

func NewMongo(ctx context.Context, db *mongo.Database, ttl time.Duration) (*Mongo, error) {
	collection := db.Collection(mongoCollection)

	if ttl = expiration(ttl); ttl > 0 {
		_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())),
		})
		if err != nil {
			return nil, fmt.Errorf("create ttl index: %w", err)
		}
	}

	return &Mongo{collection: collection}, nil
}

func (m *Mongo) Get(ctx context.Context, key string) (string, bool, error) {
	var entry mongoEntry
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

func (m *Mongo) Set(ctx context.Context, key, value string) error {
	_, err := m.collection.UpdateOne(ctx,
		bson.M{"_id": key},
		bson.M{"$set": bson.M{"value": value, "created_at": time.Now()}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (m *Mongo) Close() error {
	return nil
}
